package service

import (
	"context"
	"fmt"
	"strings"

	"subtrack/internal/models"
	"subtrack/internal/scoring"
	"subtrack/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const systemInstruction = `Ты помощник сервиса учёта подписок. Ты помогаешь пользователю разобраться в его регулярных платежах и партнёрских сервисах.

Правила:
- Отвечай кратко и по делу, без markdown разметки.
- Не придумывай цены, скидки и условия, которых нет в запросе.
- Если просят выбрать категорию, верни ровно одно название категории и ничего больше.`

// LLMService implements Assistant on top of GigaChat.
type LLMService struct {
	client   *gigago.Client
	complete func(ctx context.Context, prompt string) (string, error)
	logger   *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "GigaChat"
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.2

	s := &LLMService{
		client: client,
		logger: logger,
	}
	s.complete = func(ctx context.Context, prompt string) (string, error) {
		resp, err := model.Generate(ctx, []gigago.Message{
			{Role: gigago.RoleUser, Content: prompt},
		})
		if err != nil {
			return "", fmt.Errorf("failed to generate response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from LLM")
		}
		return resp.Choices[0].Message.Content, nil
	}

	logger.Info("GigaChat assistant enabled", zap.String("model", modelName))
	return s, nil
}

// DetectCategory picks one of the known labels for a service name. Answers
// outside the known list fall back to Other.
func (s *LLMService) DetectCategory(ctx context.Context, name string, known []string) (string, error) {
	content, err := s.complete(ctx, buildCategoryPrompt(name, known))
	if err != nil {
		return "", err
	}

	category := parseCategory(content, known)
	s.logger.Debug("Category detected",
		zap.String("name", name),
		zap.String("category", category),
		zap.String("raw", truncate(content, 100)),
	)
	return category, nil
}

func (s *LLMService) ExplainRecommendation(ctx context.Context, in ExplainInput) (string, error) {
	if in.Partner == nil {
		return "", fmt.Errorf("%w: partner is required", ErrInvalidInput)
	}

	content, err := s.complete(ctx, buildExplainPrompt(in))
	if err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("empty explanation from LLM")
	}
	return content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

func buildCategoryPrompt(name string, known []string) string {
	return fmt.Sprintf(`Определи категорию подписки по названию сервиса.

Сервис: %s

Допустимые категории: %s

Верни ТОЛЬКО одно название категории из списка. Если ни одна не подходит, верни %s.`,
		name, strings.Join(known, ", "), models.CategoryOther)
}

// parseCategory matches the answer against known labels, ignoring case and
// surrounding punctuation. The returned value uses the known spelling.
func parseCategory(content string, known []string) string {
	answer := strings.Trim(strings.TrimSpace(content), "\"'`.*")
	if line, _, ok := strings.Cut(answer, "\n"); ok {
		answer = strings.TrimSpace(line)
	}

	for _, k := range known {
		if strings.EqualFold(answer, k) {
			return k
		}
	}
	// Some answers wrap the label in a sentence.
	lower := strings.ToLower(answer)
	for _, k := range known {
		if k != models.CategoryOther && strings.Contains(lower, strings.ToLower(k)) {
			return k
		}
	}
	return models.CategoryOther
}

func buildExplainPrompt(in ExplainInput) string {
	var reasons strings.Builder
	for _, r := range in.Reasons {
		fmt.Fprintf(&reasons, "- %s: +%.1f\n", describeReason(r.Type), r.Weight)
	}
	if reasons.Len() == 0 {
		reasons.WriteString("- нет\n")
	}

	categories := "нет подписок"
	if len(in.UserCategories) > 0 {
		categories = strings.Join(in.UserCategories, ", ")
	}

	p := in.Partner
	return fmt.Sprintf(`Объясни пользователю в 2-3 предложениях, почему ему рекомендован партнёрский сервис.

Сервис: %s
Категория: %s
Цена: %s
Скидка для премиум пользователей: %.0f%%
Оценка: %.1f из 100

Факторы оценки:
%s
Категории текущих подписок пользователя: %s`,
		p.Name, p.Category, p.BasePrice.StringFixed(2), p.PremiumDiscount, in.Score,
		reasons.String(), categories)
}

func describeReason(kind scoring.ReasonKind) string {
	switch kind {
	case scoring.ReasonCategoryMatch:
		return "совпадает с категорией ваших подписок"
	case scoring.ReasonPremiumDiscount:
		return "скидка для премиум пользователей"
	case scoring.ReasonAPIIntegration:
		return "есть интеграция по API"
	case scoring.ReasonPopularity:
		return "популярность"
	default:
		return string(kind)
	}
}
