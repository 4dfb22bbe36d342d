package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Enabled         bool     // Signature verification toggle
	Secret          string   // Shared secret for signature verification
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute
}

// failureRequest is the body of a CI failure report.
type failureRequest struct {
	Log       string `json:"log"`
	JobName   string `json:"job_name"`
	CommitSHA string `json:"commit_sha"`
}
