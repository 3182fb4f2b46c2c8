package scoring

import (
	"fmt"

	"github.com/okian/introeval/internal/domain/lexical"
	"github.com/okian/introeval/internal/domain/model"
)

const secondsPerMinute = 60

// ScoreSpeechRate derives words per minute and maps it to a band (2-10
// points). Bands are closed integer ranges tested against the unrounded
// rate, so rates such as 110.5 fall through to "too slow".
func ScoreSpeechRate(transcript string, durationSec int) (model.SpeechRateResult, error) {
	if durationSec <= 0 {
		return model.SpeechRateResult{}, fmt.Errorf("speech rate: duration %d: %w", durationSec, ErrInvalidDuration)
	}

	words := lexical.WordCount(transcript)
	wpm := float64(words) / float64(durationSec) * secondsPerMinute

	var (
		score    int
		feedback string
	)
	switch {
	case wpm >= 111 && wpm <= 140:
		score, feedback = 10, fmt.Sprintf("Ideal speech rate: %.1f WPM", wpm)
	case (wpm >= 141 && wpm <= 160) || (wpm >= 81 && wpm <= 110):
		score, feedback = 6, fmt.Sprintf("Acceptable speech rate: %.1f WPM", wpm)
	case wpm > 160:
		score, feedback = 2, fmt.Sprintf("Too fast: %.1f WPM", wpm)
	default:
		score, feedback = 2, fmt.Sprintf("Too slow: %.1f WPM", wpm)
	}

	return model.SpeechRateResult{
		Score:    score,
		WPM:      round(wpm, 1),
		Feedback: feedback,
	}, nil
}
