package config

const (
	_etc = "/usr/local/etc/com.github.pathfinder-sheets"
	_var = "/usr/local/var/com.github.pathfinder-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
	DEFAULT_BROWSER     = "open"
)
