package models

import "fmt"

// Proxy — SOCKS5-прокси, через который парсер ходит в Telegram.
type Proxy struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Addr возвращает адрес прокси в формате host:port.
func (p Proxy) Addr() string {
	return fmt.Sprintf("%s:%d", p.IP, p.Port)
}
