package cmd

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	EventBufferSize         int
	AuditRetentionDays      int
	AuditRetentionSchedule  string
	ReconciliationSchedule  string
	ReconciliationBatchSize int
	WriteOffReviewThreshold string
}
