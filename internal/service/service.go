package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/finsight/forecast-service/internal/config"
	"github.com/finsight/forecast-service/internal/forecast"
	"github.com/finsight/forecast-service/internal/middleware"
	"github.com/finsight/forecast-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	SavePrediction(rec *models.PredictionRecord) error
	ListPredictions(userID int64, limit int) ([]models.PredictionRecord, error)
}

// RateQuoter supplies the current central bank key rate.
type RateQuoter interface {
	GetKeyRate() (float64, error)
}

// AlertSender delivers over-budget notifications.
type AlertSender interface {
	SendBudgetAlert(to, username string, totalWeekly, weeklyBudget, overspend float64) error
}

// Service handles business logic
type Service struct {
	repo   Store
	engine *forecast.Engine
	rates  RateQuoter
	alerts AlertSender
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service
func NewService(repo Store, engine *forecast.Engine, rates RateQuoter, alerts AlertSender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		rates:  rates,
		alerts: alerts,
		log:    log,
		config: cfg,
		now:    time.Now,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// PredictWeekly runs the full pipeline for the authenticated user: builds
// and validates the profile, forecasts the next full week, reconstructs
// last week, derives insights, persists the result and fires an alert
// when the forecast is over budget.
func (s *Service) PredictWeekly(ctx context.Context, raw map[string]any) (*models.WeeklyForecastResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := forecast.BuildProfile(raw)
	if err != nil {
		return nil, err
	}
	if err := forecast.ValidateProfile(profile); err != nil {
		return nil, err
	}

	now := s.now()
	weekly, err := s.engine.Forecast(profile, now)
	if err != nil {
		return nil, err
	}
	lastWeek := forecast.ReconstructLastWeek(profile, now)

	insights := forecast.BuildInsights(profile, weekly.TotalWeekly, lastWeek.TotalLastWeek)
	insights.Recommendations = s.recommendations(weekly.TotalWeekly/7, profile)

	resp := &models.WeeklyForecastResponse{
		Success:         true,
		Predictions:     weekly.Predictions,
		TotalWeekly:     weekly.TotalWeekly,
		LastWeekActual:  lastWeek.Actuals,
		TotalLastWeek:   lastWeek.TotalLastWeek,
		ModelAccuracy:   weekly.ModelAccuracy,
		ConfidenceLevel: weekly.Confidence,
		Insights:        insights,
		FallbackUsed:    weekly.FallbackUsed,
		WeeklyBudget:    insights.WeeklyBudget,
	}

	s.persistForecast(userID, resp)
	if insights.BudgetStatus == models.StatusOverBudget {
		s.notifyOverBudget(userID, resp)
	}

	return resp, nil
}

// PredictDaily forecasts tomorrow only, with recommendations derived from
// the predicted amount.
func (s *Service) PredictDaily(ctx context.Context, raw map[string]any) (*models.DailyForecastResponse, error) {
	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}

	profile, err := forecast.BuildProfile(raw)
	if err != nil {
		return nil, err
	}
	if err := forecast.ValidateProfile(profile); err != nil {
		return nil, err
	}

	prediction, fallbackUsed, err := s.engine.PredictDaily(profile, s.now())
	if err != nil {
		return nil, err
	}

	resp := &models.DailyForecastResponse{
		Success:         true,
		Prediction:      prediction,
		ModelAccuracy:   forecast.ModelAccuracy,
		ConfidenceLevel: forecast.ConfidenceHigh,
		FallbackUsed:    fallbackUsed,
		Recommendations: s.recommendations(prediction.PredictedSpend, profile),
	}
	if fallbackUsed {
		resp.ModelAccuracy = forecast.FallbackAccuracy
		resp.ConfidenceLevel = forecast.ConfidenceMedium
	}
	return resp, nil
}

// History returns the user's recent stored forecasts.
func (s *Service) History(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListPredictions(userID, limit)
}

// recommendations augments the rule-derived advice with the current key
// rate when the profile carries a loan. The rate lookup is best effort.
func (s *Service) recommendations(predictedSpend float64, p *models.SpendingProfile) []models.Recommendation {
	recs := forecast.Recommendations(predictedSpend, p)
	if p.LoanType == "None" || s.rates == nil {
		return recs
	}

	rate, err := s.rates.GetKeyRate()
	if err != nil {
		s.log.Warnf("Failed to fetch key rate for loan recommendation: %v", err)
		return recs
	}
	recs = append(recs, models.Recommendation{
		Type:    "info",
		Title:   "Loan Rate Check",
		Message: fmt.Sprintf("The central bank key rate is currently %.2f%%; your %s loan carries %.2f%%", rate, p.LoanType, p.InterestRate),
		Action:  "Compare refinancing offers if your rate is well above the key rate",
	})
	return recs
}

func (s *Service) persistForecast(userID int64, resp *models.WeeklyForecastResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.log.Errorf("Failed to marshal forecast payload: %v", err)
		return
	}
	rec := &models.PredictionRecord{
		UserID:        userID,
		TotalWeekly:   resp.TotalWeekly,
		TotalLastWeek: resp.TotalLastWeek,
		WeeklyBudget:  resp.WeeklyBudget,
		BudgetStatus:  resp.Insights.BudgetStatus,
		FallbackUsed:  resp.FallbackUsed,
		Payload:       payload,
	}
	if err := s.repo.SavePrediction(rec); err != nil {
		s.log.Errorf("Failed to persist forecast for user %d: %v", userID, err)
	}
}

// notifyOverBudget sends the alert in the background; delivery failures
// are logged by the sender and never fail the request.
func (s *Service) notifyOverBudget(userID int64, resp *models.WeeklyForecastResponse) {
	if s.alerts == nil {
		return
	}
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		s.log.Warnf("Cannot send budget alert, user %d not found: %v", userID, err)
		return
	}
	go func() {
		_ = s.alerts.SendBudgetAlert(user.Email, user.Username,
			resp.TotalWeekly, resp.WeeklyBudget, resp.Insights.OverspendAmount)
	}()
}

func (s *Service) userID(ctx context.Context) (int64, error) {
	idStr, ok := middleware.UserID(ctx)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return id, nil
}
