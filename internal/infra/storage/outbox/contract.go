package outbox

import "github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
