package kafka

// Config holds Kafka connection parameters.
type Config struct {
	// SASLMechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string

	// ClientID is reported to the brokers; defaults to "offer-engine".
	ClientID string

	Brokers []string

	TLS         bool
	SASLEnabled bool
}
