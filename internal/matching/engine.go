// Package matching computes a bounded compatibility score for a candidate/job
// pair by consulting an external scoring oracle.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultScoreTimeout = 10 * time.Second

// Engine normalizes whatever the oracle returns into an integer in [0, 100].
// A failed or malformed oracle call degrades to a score of 0; it never fails
// the caller. The engine holds no state between calls.
type Engine struct {
	oracle  Oracle
	timeout time.Duration
	logger  *zap.Logger
}

// NewEngine builds an engine around the given oracle. A non-positive timeout
// falls back to the default.
func NewEngine(oracle Oracle, timeout time.Duration, logger *zap.Logger) *Engine {
	if timeout <= 0 {
		timeout = defaultScoreTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		oracle:  oracle,
		timeout: timeout,
		logger:  logger,
	}
}

// Score produces a compatibility score in [0, 100] for the pair. Oracle
// failures and timeouts are absorbed here and logged; the returned score is
// always usable.
func (e *Engine) Score(ctx context.Context, candidate CandidateProjection, job JobRequirements) int {
	prompt, err := buildPrompt(candidate, job)
	if err != nil {
		e.logger.Warn("scoring degraded: failed to build prompt", zap.Error(err))
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.oracle.Propose(ctx, prompt)
	if err != nil {
		e.logger.Warn("scoring degraded: oracle call failed, falling back to 0",
			zap.String("job", job.Title),
			zap.Error(err),
		)
		return 0
	}

	score, err := parseScore(raw)
	if err != nil {
		e.logger.Warn("scoring degraded: unparseable oracle response, falling back to 0",
			zap.String("job", job.Title),
			zap.String("response", raw),
		)
		return 0
	}

	return clampScore(score)
}

func buildPrompt(candidate CandidateProjection, job JobRequirements) (string, error) {
	candidateJSON, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate projection: %w", err)
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job requirements: %w", err)
	}

	prompt := fmt.Sprintf(`You are an expert healthcare staffing analyst. Rate how well the following nurse fits the following job posting.

		Nurse profile:
		%s

		Job posting:
		%s

		SCORING CRITERIA - Evaluate ONLY based on:
		1. Overlap between the nurse's skills/certifications and the job's required skills.
		2. Whether the nurse's specialization matches the department.
		3. Whether the nurse's years of experience are adequate for the role.
		4. Whether the nurse's preferred shifts include the job's shift type.
		5. Prior experience at the posting facility is a plus, never a requirement.

		Produce a single integer compatibility score between 0 and 100, where
		0 means no fit at all and 100 means a perfect fit.

		Respond ONLY with a valid JSON object in this exact format:
		{"score": <integer between 0 and 100>}`,
		string(candidateJSON),
		string(jobJSON),
	)

	return prompt, nil
}

// parseScore extracts an integer score from an oracle response. It first
// tries the contract format {"score": N}, then falls back to the first
// integer token in the text.
func parseScore(raw string) (int, error) {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed struct {
		Score *json.Number `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err == nil && parsed.Score != nil {
		if f, err := parsed.Score.Float64(); err == nil {
			return int(f), nil
		}
	}

	if n, ok := firstInteger(content); ok {
		return n, nil
	}

	return 0, fmt.Errorf("no integer score in oracle response")
}

// firstInteger scans for the first (optionally negative) run of digits.
func firstInteger(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			continue
		}
		start := i
		neg := start > 0 && s[start-1] == '-'
		end := start
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		n := 0
		for _, d := range s[start:end] {
			n = n*10 + int(d-'0')
			if n > 1000000 {
				break // enough to know it clamps to 100
			}
		}
		if neg {
			n = -n
		}
		return n, true
	}
	return 0, false
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
