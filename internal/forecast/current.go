package forecast

// Current returns the flattened first entry of the feed, or nil for an empty feed.
// Under SkipMalformed it is the first entry that flattens cleanly.
func (a *Aggregator) Current(entries []Entry) (*Sample, error) {
	for i, e := range entries {
		s, err := flattenAt(i, e)
		if err == nil {
			return &s, nil
		}
		if a.policy != SkipMalformed {
			return nil, err
		}
		if a.onSkip != nil {
			a.onSkip(err)
		}
	}
	return nil, nil
}
