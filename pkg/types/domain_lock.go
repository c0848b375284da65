package types

// DomainLock tracks the free-fix quota of one analyzed domain. Unlocked
// domains (paid plans) bypass the quota entirely.
type DomainLock struct {
	Domain     string `json:"domain"`
	FixesUsed  int    `json:"fixes_used"`
	FixesLimit int    `json:"fixes_limit"`
	IsUnlocked bool   `json:"is_unlocked"`
}

func (l DomainLock) QuotaExhausted() bool {
	return !l.IsUnlocked && l.FixesUsed >= l.FixesLimit
}
