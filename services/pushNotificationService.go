package services

import (
	"context"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
)

// FCM topics. Leader browsers subscribe to TopicFamilyLeaders after
// family access; every installed client subscribes to TopicMaintenance.
const (
	TopicFamilyLeaders = "family-leaders"
	TopicMaintenance   = "maintenance"
)

const fcmTimeout = 10 * time.Second

type PushNotificationService struct {
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Link  string            `json:"link,omitempty"`
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	pushService = &PushNotificationService{}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			initializers.Log.Warnw("failed to initialize Firebase app with service account", "error", err)
			return
		}
	} else {
		app, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			initializers.Log.Warnw("failed to initialize Firebase app with ADC", "error", err)
			return
		}
	}

	pushService.fcmClient, err = app.Messaging(context.Background())
	if err != nil {
		initializers.Log.Warnw("failed to get Firebase messaging client", "error", err)
		return
	}

	initializers.Log.Info("push notification service initialized with FCM")
}

// GetPushNotificationService may return nil when Init was never called.
func GetPushNotificationService() *PushNotificationService {
	return pushService
}

func (s *PushNotificationService) SendNotificationToUser(ctx context.Context, userID int, payload NotificationPayload) error {
	var tokens []models.PushToken
	err := initializers.DB.From("user_push_tokens").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStructsContext(ctx, &tokens)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %d: %w", userID, err)
	}

	if len(tokens) == 0 {
		return fmt.Errorf("no push tokens found for user %d", userID)
	}

	for _, token := range tokens {
		if err := s.sendToToken(ctx, token, payload); err != nil {
			initializers.Log.Warnw("failed to send notification to token", "token", token.PushToken, "error", err)
		}
	}

	return nil
}

// SendNotificationToUsers fans out to every user, at most four at a time.
func (s *PushNotificationService) SendNotificationToUsers(ctx context.Context, userIDs []int, payload NotificationPayload) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	failures := make([]error, len(userIDs))
	for i, userID := range userIDs {
		g.Go(func() error {
			failures[i] = s.SendNotificationToUser(ctx, userID, payload)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range failures {
		if err != nil {
			failed++
			initializers.Log.Warnw("failed to send notification to user", "user", userIDs[i], "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to send notifications to %d users", failed)
	}
	return nil
}

func buildMessage(payload NotificationPayload) *messaging.Message {
	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: payload.Title,
				Body:  payload.Body,
				Icon:  "/icons/icon-192x192.png",
			},
		},
	}
	if payload.Link != "" {
		msg.Webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: payload.Link}
	}
	return msg
}

func (s *PushNotificationService) sendToToken(ctx context.Context, pushToken models.PushToken, payload NotificationPayload) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := buildMessage(payload)
	message.Token = pushToken.PushToken

	switch pushToken.Platform {
	case "android":
		message.Android = &messaging.AndroidConfig{Priority: "high"}
	case "ios":
		message.APNS = &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, fcmTimeout)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	initializers.Log.Debugw("sent FCM notification", "messageId", response)
	return nil
}

func (s *PushNotificationService) SendToTopic(ctx context.Context, topic string, payload NotificationPayload) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := buildMessage(payload)
	message.Topic = topic

	ctx, cancel := context.WithTimeout(ctx, fcmTimeout)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM topic message: %w", err)
	}

	initializers.Log.Infow("sent FCM topic notification", "topic", topic, "messageId", response)
	return nil
}

func (s *PushNotificationService) SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, fcmTimeout)
	defer cancel()

	response, err := s.fcmClient.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	if response.FailureCount > 0 {
		return fmt.Errorf("failed to subscribe %d tokens to topic %s", response.FailureCount, topic)
	}

	return nil
}

// NotifyPrayerRequest tells leaders and admins that a member submitted a
// prayer request. Delivery failures are logged, never returned.
func NotifyPrayerRequest(prayer models.PrayerRequest) {
	s := GetPushNotificationService()
	if s == nil || s.fcmClient == nil {
		return
	}

	ctx := context.Background()
	payload := NotificationPayload{
		Title: "새 기도제목",
		Body:  fmt.Sprintf("%s님이 기도제목을 올렸어요", prayer.User_Name),
		Data:  map[string]string{"type": "PRAYER_CREATED", "prayerId": fmt.Sprint(prayer.ID)},
		Link:  "/familyManagement",
	}

	if err := s.SendToTopic(ctx, TopicFamilyLeaders, payload); err != nil {
		initializers.Log.Warnw("failed to notify family leaders", "error", err)
	}

	var adminIDs []int
	err := initializers.DB.From("user_profile").
		Select("user_profile_id").
		Where(goqu.C("admin").IsTrue()).
		ScanValsContext(ctx, &adminIDs)
	if err != nil {
		initializers.Log.Warnw("failed to load admin ids", "error", err)
		return
	}
	if len(adminIDs) == 0 {
		return
	}
	if err := s.SendNotificationToUsers(ctx, adminIDs, payload); err != nil {
		initializers.Log.Warnw("failed to notify admins", "error", err)
	}
}

// NotifyMaintenance announces a maintenance status change to every client.
func NotifyMaintenance(status models.SystemStatus) {
	s := GetPushNotificationService()
	if s == nil || s.fcmClient == nil {
		return
	}

	title := "서버 점검 종료"
	if status.Is_Active {
		title = "서버 점검 안내"
	}
	payload := NotificationPayload{
		Title: title,
		Body:  status.Message,
		Data:  map[string]string{"type": "MAINTENANCE", "active": fmt.Sprint(status.Is_Active)},
	}
	if err := s.SendToTopic(context.Background(), TopicMaintenance, payload); err != nil {
		initializers.Log.Warnw("failed to announce maintenance", "error", err)
	}
}
