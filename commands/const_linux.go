package commands

const (
	_etc = "/usr/local/etc/campaign-sheets"

	DEFAULT_CONFIG      = _etc + "/campaign-sheets.yaml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
