package config

import "os"

// Addr is the HTTP listen address, ":8080" unless APP_PORT says otherwise.
func Addr() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok {
		return ":8080"
	}
	return ":" + port
}
