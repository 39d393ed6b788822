package config

import "os"

func IsDebug() bool {
	return os.Getenv("AUGURU_DEBUG") == "1"
}
