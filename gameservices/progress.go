package gameservices

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/explay-project/sdk/protocol"
)

// Reserved keys used by the convenience wrappers.
const (
	progressKey  = "progress"
	highScoreKey = "highScore"
)

// SaveProgress serializes v and stores it under the reserved progress key.
func (c *Client) SaveProgress(v any, public bool) (*protocol.Data, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress data: %w", err)
	}
	return c.Set(progressKey, string(b), public)
}

// LoadProgress loads the reserved progress key into out. A missing record or
// one that no longer decodes is treated as no saved progress; the decode
// failure is logged.
func (c *Client) LoadProgress(out any) (bool, error) {
	data, err := c.Get(progressKey)
	if err != nil {
		if errors.Is(err, ErrRequestFailed) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(data.Value), out); err != nil {
		c.log.Error(fmt.Sprintf("Failed to parse progress data: %v", err))
		return false, nil
	}
	return true, nil
}

// SaveHighScore stores a score under the reserved high score key.
func (c *Client) SaveHighScore(score int, public bool) (*protocol.Data, error) {
	return c.Set(highScoreKey, strconv.Itoa(score), public)
}

// HighScore returns the stored high score, defaulting to zero when none is
// stored or the stored value does not parse.
func (c *Client) HighScore() (int, error) {
	data, err := c.Get(highScoreKey)
	if err != nil {
		if errors.Is(err, ErrRequestFailed) {
			return 0, nil
		}
		return 0, err
	}

	score, err := strconv.Atoi(data.Value)
	if err != nil {
		return 0, nil
	}
	return score, nil
}
