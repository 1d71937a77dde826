package config

// DefaultExcludeTerms returns a curated list of substrings that mark a visit
// as private. A visit whose URL or title contains any of these terms
// (case-insensitive) is never recorded. The list covers banking, password
// managers, authentication providers, healthcare portals, and other
// sensitive services.
func DefaultExcludeTerms() []string {
	return []string{
		// Generic markers
		"private",
		"password",
		"incognito",

		// Banking & Financial
		"banking",
		"chase.com",
		"bankofamerica.com",
		"wellsfargo.com",
		"fidelity.com",
		"vanguard.com",
		"paypal.com",
		"venmo.com",

		// Password Managers
		"1password.com",
		"lastpass.com",
		"bitwarden.com",
		"dashlane.com",

		// Authentication & Identity
		"accounts.google.com",
		"login.microsoftonline.com",
		"login.gov",
		"okta.com",

		// Healthcare & Government
		"mychart",
		"healthcare.gov",
		"irs.gov",
		"ssa.gov",

		// Crypto & Trading
		"coinbase.com",
		"binance.com",
		"kraken.com",
	}
}
