package config

import "bytemomo/remora/internal/domain"

// Canonical vulnerability type vocabulary. Normalized findings only ever carry
// one of these (or "unclassified").
const (
	TypeSQLInjection          = "sql_injection"
	TypeCommandInjection      = "command_injection"
	TypeXSSReflected          = "xss_reflected"
	TypeXSSStored             = "xss_stored"
	TypeCSRFMissing           = "csrf_missing"
	TypeAuthBypass            = "auth_bypass"
	TypeSessionFixation       = "session_fixation"
	TypeMassAssignment        = "mass_assignment"
	TypeOpenRedirect          = "open_redirect"
	TypePathTraversal         = "path_traversal"
	TypeInformationDisclosure = "information_disclosure"
	TypeInsecureCookie        = "insecure_cookie"
	TypeMissingSecurityHeader = "missing_security_header"
	TypeSSLMisconfig          = "ssl_misconfig"
	TypeUnclassified          = "unclassified"
)

// CanonicalTypes is the set of accepted vulnerability types. Findings whose
// native label maps to nothing here become "unclassified" rather than being
// dropped.
var CanonicalTypes = map[string]bool{
	TypeSQLInjection:          true,
	TypeCommandInjection:      true,
	TypeXSSReflected:          true,
	TypeXSSStored:             true,
	TypeCSRFMissing:           true,
	TypeAuthBypass:            true,
	TypeSessionFixation:       true,
	TypeMassAssignment:        true,
	TypeOpenRedirect:          true,
	TypePathTraversal:         true,
	TypeInformationDisclosure: true,
	TypeInsecureCookie:        true,
	TypeMissingSecurityHeader: true,
	TypeSSLMisconfig:          true,
	TypeUnclassified:          true,
}

// Default returns the built-in configuration. A user config file overrides
// individual table entries on top of these.
func Default() *Config {
	return &Config{
		Inputs: InputLayout{
			SASTDir:   "sast",
			DASTDir:   "dast",
			ManualDir: "manual",
		},
		Correlation: CorrelationConfig{LineWindow: 3},
		Scoring: ScoringConfig{
			Default: FactorSet{
				ThreatAgent: 5, Exploitability: 5, Awareness: 4, Detection: 6,
				Confidentiality: 5, Integrity: 5, Availability: 4, Accountability: 5,
				Financial: 4, Reputation: 4, Compliance: 4,
			},
			Factors: map[string]FactorSet{
				TypeSQLInjection: {
					ThreatAgent: 6, Exploitability: 7, Awareness: 6, Detection: 8,
					Confidentiality: 9, Integrity: 8, Availability: 6, Accountability: 7,
					Financial: 7, Reputation: 6, Compliance: 8,
				},
				TypeCommandInjection: {
					ThreatAgent: 6, Exploitability: 6, Awareness: 6, Detection: 8,
					Confidentiality: 9, Integrity: 9, Availability: 8, Accountability: 7,
					Financial: 8, Reputation: 7, Compliance: 8,
				},
				TypeXSSReflected: {
					ThreatAgent: 6, Exploitability: 6, Awareness: 7, Detection: 8,
					Confidentiality: 6, Integrity: 5, Availability: 2, Accountability: 5,
					Financial: 4, Reputation: 5, Compliance: 5,
				},
				TypeXSSStored: {
					ThreatAgent: 7, Exploitability: 6, Awareness: 7, Detection: 8,
					Confidentiality: 7, Integrity: 6, Availability: 2, Accountability: 5,
					Financial: 5, Reputation: 6, Compliance: 5,
				},
				TypeCSRFMissing: {
					ThreatAgent: 5, Exploitability: 5, Awareness: 7, Detection: 8,
					Confidentiality: 4, Integrity: 7, Availability: 2, Accountability: 6,
					Financial: 4, Reputation: 4, Compliance: 5,
				},
				TypeAuthBypass: {
					ThreatAgent: 7, Exploitability: 6, Awareness: 5, Detection: 7,
					Confidentiality: 9, Integrity: 8, Availability: 5, Accountability: 8,
					Financial: 8, Reputation: 8, Compliance: 8,
				},
				TypeSessionFixation: {
					ThreatAgent: 5, Exploitability: 4, Awareness: 5, Detection: 7,
					Confidentiality: 7, Integrity: 6, Availability: 2, Accountability: 6,
					Financial: 5, Reputation: 5, Compliance: 6,
				},
				TypeMassAssignment: {
					ThreatAgent: 5, Exploitability: 5, Awareness: 4, Detection: 7,
					Confidentiality: 5, Integrity: 7, Availability: 2, Accountability: 5,
					Financial: 4, Reputation: 4, Compliance: 4,
				},
				TypeOpenRedirect: {
					ThreatAgent: 5, Exploitability: 6, Awareness: 6, Detection: 8,
					Confidentiality: 3, Integrity: 3, Availability: 1, Accountability: 3,
					Financial: 2, Reputation: 4, Compliance: 2,
				},
				TypePathTraversal: {
					ThreatAgent: 6, Exploitability: 6, Awareness: 6, Detection: 8,
					Confidentiality: 8, Integrity: 5, Availability: 3, Accountability: 5,
					Financial: 5, Reputation: 5, Compliance: 6,
				},
				TypeInformationDisclosure: {
					ThreatAgent: 4, Exploitability: 7, Awareness: 7, Detection: 9,
					Confidentiality: 5, Integrity: 1, Availability: 1, Accountability: 2,
					Financial: 2, Reputation: 3, Compliance: 3,
				},
				TypeInsecureCookie: {
					ThreatAgent: 4, Exploitability: 4, Awareness: 6, Detection: 9,
					Confidentiality: 5, Integrity: 3, Availability: 1, Accountability: 3,
					Financial: 2, Reputation: 3, Compliance: 4,
				},
				TypeMissingSecurityHeader: {
					ThreatAgent: 4, Exploitability: 3, Awareness: 7, Detection: 9,
					Confidentiality: 3, Integrity: 3, Availability: 1, Accountability: 2,
					Financial: 1, Reputation: 2, Compliance: 3,
				},
				TypeSSLMisconfig: {
					ThreatAgent: 5, Exploitability: 4, Awareness: 7, Detection: 8,
					Confidentiality: 8, Integrity: 5, Availability: 2, Accountability: 3,
					Financial: 5, Reputation: 6, Compliance: 7,
				},
			},
		},
		Taxonomy: map[string][]CategoryRef{
			TypeSQLInjection: {
				{Taxonomy: "owasp-top10", Label: "A03:Injection", Confidence: domain.ConfidenceConfirmed},
				{Taxonomy: "rails-guide", Label: "SQL Injection", Confidence: domain.ConfidenceConfirmed},
			},
			TypeCommandInjection: {
				{Taxonomy: "owasp-top10", Label: "A03:Injection", Confidence: domain.ConfidenceConfirmed},
				{Taxonomy: "rails-guide", Label: "Command Line Injection", Confidence: domain.ConfidenceConfirmed},
			},
			TypeXSSReflected: {
				{Taxonomy: "owasp-top10", Label: "A03:Injection", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Cross-Site Scripting (XSS)", Confidence: domain.ConfidenceConfirmed},
			},
			TypeXSSStored: {
				{Taxonomy: "owasp-top10", Label: "A03:Injection", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Cross-Site Scripting (XSS)", Confidence: domain.ConfidenceConfirmed},
			},
			TypeCSRFMissing: {
				{Taxonomy: "owasp-top10", Label: "A01:Broken Access Control", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Cross-Site Request Forgery (CSRF)", Confidence: domain.ConfidenceConfirmed},
			},
			TypeAuthBypass: {
				{Taxonomy: "owasp-top10", Label: "A07:Identification and Authentication Failures", Confidence: domain.ConfidenceConfirmed},
				{Taxonomy: "rails-guide", Label: "User Management", Confidence: domain.ConfidenceLikely},
			},
			TypeSessionFixation: {
				{Taxonomy: "owasp-top10", Label: "A07:Identification and Authentication Failures", Confidence: domain.ConfidenceConfirmed},
				{Taxonomy: "rails-guide", Label: "Session Fixation", Confidence: domain.ConfidenceConfirmed},
			},
			TypeMassAssignment: {
				{Taxonomy: "owasp-top10", Label: "A04:Insecure Design", Confidence: domain.ConfidenceTentative},
				{Taxonomy: "rails-guide", Label: "Mass Assignment", Confidence: domain.ConfidenceConfirmed},
			},
			TypeOpenRedirect: {
				{Taxonomy: "owasp-top10", Label: "A01:Broken Access Control", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Redirection and Files", Confidence: domain.ConfidenceConfirmed},
			},
			TypePathTraversal: {
				{Taxonomy: "owasp-top10", Label: "A01:Broken Access Control", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Redirection and Files", Confidence: domain.ConfidenceLikely},
			},
			TypeInformationDisclosure: {
				{Taxonomy: "owasp-top10", Label: "A05:Security Misconfiguration", Confidence: domain.ConfidenceLikely},
			},
			TypeInsecureCookie: {
				{Taxonomy: "owasp-top10", Label: "A05:Security Misconfiguration", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Sessions", Confidence: domain.ConfidenceLikely},
			},
			TypeMissingSecurityHeader: {
				{Taxonomy: "owasp-top10", Label: "A05:Security Misconfiguration", Confidence: domain.ConfidenceLikely},
				{Taxonomy: "rails-guide", Label: "Default Headers", Confidence: domain.ConfidenceLikely},
			},
			TypeSSLMisconfig: {
				{Taxonomy: "owasp-top10", Label: "A02:Cryptographic Failures", Confidence: domain.ConfidenceConfirmed},
			},
			TypeUnclassified: {
				{Taxonomy: "none", Label: "Uncategorized", Confidence: domain.ConfidenceTentative},
			},
		},
		TypeMappings: map[string]map[string]string{
			"brakeman": {
				"sql_injection":              TypeSQLInjection,
				"cross_site_scripting":       TypeXSSReflected,
				"cross_site_request_forgery": TypeCSRFMissing,
				"command_injection":          TypeCommandInjection,
				"mass_assignment":            TypeMassAssignment,
				"redirect":                   TypeOpenRedirect,
				"file_access":                TypePathTraversal,
				"session_setting":            TypeSessionFixation,
				"information_disclosure":     TypeInformationDisclosure,
				"authentication":             TypeAuthBypass,
			},
			"zap": {
				"sql_injection":                            TypeSQLInjection,
				"cross_site_scripting_reflected":           TypeXSSReflected,
				"cross_site_scripting_persistent":          TypeXSSStored,
				"absence_of_anti_csrf_tokens":              TypeCSRFMissing,
				"cookie_no_httponly_flag":                  TypeInsecureCookie,
				"cookie_without_secure_flag":               TypeInsecureCookie,
				"x_frame_options_header_not_set":           TypeMissingSecurityHeader,
				"content_security_policy_header_not_set":   TypeMissingSecurityHeader,
				"server_leaks_version_information":         TypeInformationDisclosure,
				"application_error_disclosure":             TypeInformationDisclosure,
				"external_redirect":                        TypeOpenRedirect,
				"path_traversal":                           TypePathTraversal,
				"session_fixation":                         TypeSessionFixation,
				"authentication_credentials_in_url":        TypeAuthBypass,
				"weak_authentication_method":               TypeAuthBypass,
				"strict_transport_security_header_not_set": TypeSSLMisconfig,
			},
			"nmap": {
				"ssl_heartbleed":     TypeSSLMisconfig,
				"ssl_poodle":         TypeSSLMisconfig,
				"ssl_dh_params":      TypeSSLMisconfig,
				"ssl_cert":           TypeSSLMisconfig,
				"http_sql_injection": TypeSQLInjection,
				"http_csrf":          TypeCSRFMissing,
				"http_dombased_xss":  TypeXSSReflected,
				"http_stored_xss":    TypeXSSStored,
				"http_trace":         TypeInformationDisclosure,
				"http_enum":          TypeInformationDisclosure,
				"http_passwd":        TypePathTraversal,
			},
		},
		ConfidenceMappings: map[string]map[string]domain.Confidence{
			"brakeman": {
				"high":   domain.ConfidenceLikely,
				"medium": domain.ConfidenceTentative,
				"weak":   domain.ConfidenceTentative,
			},
			"zap": {
				"user_confirmed": domain.ConfidenceConfirmed,
				"high":           domain.ConfidenceLikely,
				"medium":         domain.ConfidenceTentative,
				"low":            domain.ConfidenceTentative,
			},
			"nmap": {
				"vulnerable":        domain.ConfidenceLikely,
				"likely_vulnerable": domain.ConfidenceTentative,
			},
			"manual": {
				"confirmed": domain.ConfidenceConfirmed,
				"likely":    domain.ConfidenceLikely,
				"tentative": domain.ConfidenceTentative,
			},
		},
	}
}
