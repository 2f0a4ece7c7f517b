package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups the managers built on top of the generated queries.
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Analytics: NewAnalyticsManager(queries),
	}
}
