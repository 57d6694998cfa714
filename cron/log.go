package cron

import "github.com/ecnepsnai/logtic"

var log = logtic.Connect("cron")
