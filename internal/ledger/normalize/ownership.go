package normalize

// OwnCommissions keeps only commission records where the viewing user is the
// earner (referrer). The backend exposes the same commission event to both
// sides of a referral; counting the referred side's copy would double-count
// the money across two users' ledgers.
func OwnCommissions(records []RawCommissionRecord, viewerID string) []RawCommissionRecord {
	result := make([]RawCommissionRecord, 0, len(records))
	for _, r := range records {
		if r.ReferrerUserID == viewerID {
			result = append(result, r)
		}
	}
	return result
}
