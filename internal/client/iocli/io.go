// Package iocli абстрагирует терминальный ввод-вывод команд.
package iocli

// IO ввод-вывод команды: результат в stdout, служебные сообщения в stderr
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// Errorf пишет в поток ошибок; туда же уходят уведомления и спиннер
	Errorf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
