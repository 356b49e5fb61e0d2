package bulletin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

// Limits applied to Liquid markup inside text values
const (
	DefaultLiquidTimeout = 2 * time.Second
	DefaultLiquidMaxSize = 64 * 1024
)

// LiquidEngine renders Liquid markup found in text values with a size cap
// and a timeout
type LiquidEngine struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

// NewLiquidEngine creates an engine with the default limits
func NewLiquidEngine() *LiquidEngine {
	return NewLiquidEngineWithOptions(DefaultLiquidTimeout, DefaultLiquidMaxSize)
}

// NewLiquidEngineWithOptions creates an engine with custom limits
func NewLiquidEngineWithOptions(timeout time.Duration, maxSize int) *LiquidEngine {
	return &LiquidEngine{
		timeout: timeout,
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

// HasMarkup reports whether a value contains Liquid output or tag delimiters
func HasMarkup(value string) bool {
	return strings.Contains(value, "{{") || strings.Contains(value, "{%")
}

// Render renders content against data
func (l *LiquidEngine) Render(content string, data map[string]interface{}) (string, error) {
	if len(content) > l.maxSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), l.maxSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", r)
			}
		}()

		rendered, err := l.engine.ParseAndRenderString(content, data)
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}
		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("liquid rendering timeout after %v", l.timeout)
	}
}
