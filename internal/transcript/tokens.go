package transcript

func RoughEstimateTokens(text string) int {
	avgCharsPerToken := 4.0
	tokens := int(float64(len([]rune(text))) / avgCharsPerToken)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// EstimateTokens sums the rough token estimate of every message content.
func (t Transcript) EstimateTokens() int {
	total := 0
	for _, msg := range t.Messages {
		total += RoughEstimateTokens(msg.Content)
	}
	return total
}
