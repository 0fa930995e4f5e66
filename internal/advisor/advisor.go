// Package advisor produces short money-making tips for a player through an
// external text generation API. It is decorative: failures never surface as
// HTTP errors, they turn into fixed fallback texts.
package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/config"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

const systemPrompt = "You are the financial advisor of the Voidnest.de Minecraft server. " +
	"Answer in at most three short bullet points."

// Advisor generates advice for a player.
type Advisor interface {
	Advise(ctx context.Context, player models.Player) (string, error)
}

// New builds the advisor selected by settings. Without a provider or key it returns NoopAdvisor.
func New(settings config.AdvisorSettings) Advisor {
	if settings.APIKey == "" {
		return NoopAdvisor{}
	}

	switch settings.Provider {
	case constants.AdvisorProviderOpenAI:
		return NewOpenAIAdvisor(settings.APIKey, settings.BaseURL, settings.Model, settings.MaxTokens)
	case constants.AdvisorProviderAnthropic:
		return NewAnthropicAdvisor(settings.APIKey, settings.BaseURL, settings.Model, settings.MaxTokens)
	default:
		return NoopAdvisor{}
	}
}

// NoopAdvisor answers with the disabled message.
type NoopAdvisor struct{}

// Advise implements Advisor.
func (NoopAdvisor) Advise(context.Context, models.Player) (string, error) {
	return constants.MsgAdvisorDisabled, nil
}

// Generate asks a for advice within timeout and never fails: provider errors
// yield the unavailable text and empty answers the fallback text.
func Generate(ctx context.Context, a Advisor, player models.Player, timeout time.Duration) string {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.Advise(ctx, player)
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"component": "advisor",
			"player":    player.Username,
			"duration":  time.Since(start).String(),
		})
		return constants.MsgAdvisorUnavailable
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return constants.MsgAdvisorFallback
	}

	log.Debug().
		Str("player", player.Username).
		Dur("duration", time.Since(start)).
		Str("preview", utils.TruncateString(text, 80)).
		Msg("Advice generated")
	return text
}

// Prompt builds the user prompt for player.
func Prompt(player models.Player) string {
	return fmt.Sprintf(
		"Analyse the wealth of player %q.\n"+
			"Current balance: %s €.\n"+
			"Give the player 3 short, motivating tips in Minecraft style on how to earn more (jobs, trading, farming).",
		player.Username,
		strconv.FormatFloat(player.Balance, 'f', -1, 64),
	)
}
