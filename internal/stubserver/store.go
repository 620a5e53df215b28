package stubserver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fe-v2/internal/domain"
)

// Store errors surfaced to clients as the response's error message
var (
	ErrActivityNotFound    = errors.New("活动不存在")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrApplicationNotFound = errors.New("申请不存在")
	ErrOwnActivity         = errors.New("不能申请自己创建的活动")
	ErrDuplicateApply      = errors.New("请勿重复申请")
	ErrNotCreator          = errors.New("无权处理该申请")
	ErrAlreadyDecided      = errors.New("该申请已处理")
	ErrBadStatus           = errors.New("无效的申请状态")
)

type application struct {
	ID         string
	ActivityID int
	UserID     int
	Status     domain.ApplicationStatus
	CreatedAt  time.Time
}

// Store is the in-memory backing state of the stub backend. Everything is
// transient; restarting the server resets it to the seeded fixtures.
type Store struct {
	mu             sync.RWMutex
	users          map[int]domain.UserProfile
	activities     map[int]domain.ActivityDetail
	participants   map[int][]int
	applications   map[string]*application
	applicationIDs []string
	nextUserID     int
	nextActivityID int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:          make(map[int]domain.UserProfile),
		activities:     make(map[int]domain.ActivityDetail),
		participants:   make(map[int][]int),
		applications:   make(map[string]*application),
		nextUserID:     1,
		nextActivityID: 1,
	}
}

// AddUser inserts a user, assigning an id when none is set
func (s *Store) AddUser(u domain.UserProfile) domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		u.ID = s.nextUserID
	}
	if u.ID >= s.nextUserID {
		s.nextUserID = u.ID + 1
	}
	if u.CreatedAt == "" {
		u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	s.users[u.ID] = u
	return u
}

// UserByID looks up a user
func (s *Store) UserByID(id int) (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// UserByName looks up a user by username
func (s *Store) UserByName(username string) (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.UserProfile{}, false
}

// UpdateProfile applies the editable fields and returns the canonical profile
func (s *Store) UpdateProfile(userID int, update domain.ProfileUpdate) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.UserProfile{}, ErrUserNotFound
	}
	u.Signature = update.Signature
	u.Bio = update.Bio
	u.Habits = update.Habits
	if update.AvatarURL != "" {
		u.AvatarURL = update.AvatarURL
	}
	s.users[userID] = u
	return u, nil
}

// SetAvatar records a freshly uploaded avatar path
func (s *Store) SetAvatar(userID int, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	s.users[userID] = u
	return nil
}

// AddActivity inserts an activity, assigning an id when none is set
func (s *Store) AddActivity(a domain.ActivityDetail) domain.ActivityDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == 0 {
		a.ID = s.nextActivityID
	}
	if a.ID >= s.nextActivityID {
		s.nextActivityID = a.ID + 1
	}
	if a.CreatedAt == "" {
		a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if creator, ok := s.users[a.CreatorID]; ok {
		a.CreatorName = creator.Username
		a.CreatorAvatarURL = creator.AvatarURL
	}
	s.activities[a.ID] = a
	return a
}

// ActivityByID looks up an activity
func (s *Store) ActivityByID(id int) (domain.ActivityDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	return a, ok
}

// ActivitiesByCreator lists the summaries of a creator's activities in id order
func (s *Store) ActivitiesByCreator(creatorID int) []domain.ActivityInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ActivityInfo{}
	for id := 1; id < s.nextActivityID; id++ {
		a, ok := s.activities[id]
		if !ok || a.CreatorID != creatorID {
			continue
		}
		out = append(out, summaryOf(a))
	}
	return out
}

func summaryOf(a domain.ActivityDetail) domain.ActivityInfo {
	return domain.ActivityInfo{
		ID:               a.ID,
		Title:            a.Title,
		Time:             a.Time,
		Location:         a.Location,
		Tags:             a.Tags,
		CreatorID:        a.CreatorID,
		CreatorName:      a.CreatorName,
		CreatedAt:        a.CreatedAt,
		CreatorAvatarURL: a.CreatorAvatarURL,
	}
}

// AddParticipant records confirmed membership
func (s *Store) AddParticipant(activityID, userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addParticipantLocked(activityID, userID)
}

func (s *Store) addParticipantLocked(activityID, userID int) {
	for _, existing := range s.participants[activityID] {
		if existing == userID {
			return
		}
	}
	s.participants[activityID] = append(s.participants[activityID], userID)
}

// Participants lists an activity's confirmed members
func (s *Store) Participants(activityID int) []domain.SimpleUserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.SimpleUserInfo{}
	for _, userID := range s.participants[activityID] {
		if u, ok := s.users[userID]; ok {
			out = append(out, domain.SimpleUserInfo{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL})
		}
	}
	return out
}

// Apply creates a pending application for the user
func (s *Store) Apply(activityID, userID int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityID]
	if !ok {
		return "", ErrActivityNotFound
	}
	if a.CreatorID == userID {
		return "", ErrOwnActivity
	}
	for _, id := range s.applicationIDs {
		app := s.applications[id]
		if app.ActivityID == activityID && app.UserID == userID && app.Status != domain.StatusRejected {
			return "", ErrDuplicateApply
		}
	}

	app := &application{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	s.applications[app.ID] = app
	s.applicationIDs = append(s.applicationIDs, app.ID)
	return app.ID, nil
}

// SeedApplication inserts an application in a given state, for fixtures and
// tests. Accepted applications also become participations.
func (s *Store) SeedApplication(activityID, userID int, status domain.ApplicationStatus) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := &application{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	s.applications[app.ID] = app
	s.applicationIDs = append(s.applicationIDs, app.ID)
	if status == domain.StatusAccepted {
		s.addParticipantLocked(activityID, userID)
	}
	return app.ID
}

// MyApplications lists the user's applications joined with their activities
func (s *Store) MyApplications(userID int) []domain.ApplicationInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ApplicationInfo{}
	for _, id := range s.applicationIDs {
		app := s.applications[id]
		if app.UserID != userID {
			continue
		}
		a, ok := s.activities[app.ActivityID]
		if !ok {
			continue
		}
		out = append(out, domain.ApplicationInfo{
			ApplicationID: app.ID,
			ActivityID:    a.ID,
			Title:         a.Title,
			Time:          a.Time,
			Location:      a.Location,
			Tags:          a.Tags,
			CreatorName:   a.CreatorName,
			Status:        app.Status,
			CreatedAt:     app.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// ReceivedApplications lists applications targeting the creator's activities
func (s *Store) ReceivedApplications(creatorID int) []domain.ReceivedApplicationInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ReceivedApplicationInfo{}
	for _, id := range s.applicationIDs {
		app := s.applications[id]
		a, ok := s.activities[app.ActivityID]
		if !ok || a.CreatorID != creatorID {
			continue
		}
		applicant, ok := s.users[app.UserID]
		if !ok {
			continue
		}
		out = append(out, domain.ReceivedApplicationInfo{
			ApplicationID: app.ID,
			ActivityID:    a.ID,
			ActivityTitle: a.Title,
			UserID:        applicant.ID,
			Username:      applicant.Username,
			Status:        app.Status,
			CreatedAt:     app.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// Participations lists activities the user was accepted into
func (s *Store) Participations(userID int) []domain.ParticipationInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ParticipationInfo{}
	for id := 1; id < s.nextActivityID; id++ {
		a, ok := s.activities[id]
		if !ok {
			continue
		}
		for _, participant := range s.participants[id] {
			if participant != userID {
				continue
			}
			out = append(out, domain.ParticipationInfo{
				ActivityID:  a.ID,
				Title:       a.Title,
				Time:        a.Time,
				Location:    a.Location,
				Tags:        a.Tags,
				CreatorName: a.CreatorName,
			})
			break
		}
	}
	return out
}

// UpdateApplicationStatus applies an accept/reject decision by the activity
// creator. Only pending applications may transition; acceptance also records
// the participation.
func (s *Store) UpdateApplicationStatus(creatorID int, applicationID string, status domain.ApplicationStatus) error {
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return ErrBadStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return ErrApplicationNotFound
	}
	a, ok := s.activities[app.ActivityID]
	if !ok {
		return ErrActivityNotFound
	}
	if a.CreatorID != creatorID {
		return ErrNotCreator
	}
	if app.Status != domain.StatusPending {
		return fmt.Errorf("%w: %s", ErrAlreadyDecided, app.Status)
	}

	app.Status = status
	if status == domain.StatusAccepted {
		s.addParticipantLocked(app.ActivityID, app.UserID)
	}
	return nil
}
