package config

import "github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
