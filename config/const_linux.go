package config

const (
	_etc = "/usr/local/etc/pathfinder-sheets"
	_var = "/usr/local/var/pathfinder-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
	DEFAULT_BROWSER     = "xdg-open"
)
