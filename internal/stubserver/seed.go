package stubserver

import (
	"time"

	"fe-v2/internal/domain"
)

// Seed fills the store with demo fixtures for local development
func Seed(store *Store) {
	ming := store.AddUser(domain.UserProfile{
		Username:  "小明",
		Email:     "ming@example.com",
		AvatarURL: "/static/avatars/user_1.png",
		Signature: "星河里有着你的回忆",
		Bio:       "喜欢羽毛球和夜跑",
		Habits:    "晨型人，喜欢安静的地方",
	})
	hong := store.AddUser(domain.UserProfile{
		Username: "小红",
		Email:    "hong@example.com",
	})
	lei := store.AddUser(domain.UserProfile{
		Username:  "小雷",
		Email:     "lei@example.com",
		AvatarURL: "https://cdn.example.com/avatars/lei.png",
	})

	nextWeek := time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339)
	badminton := store.AddActivity(domain.ActivityDetail{
		Title:       "周末羽毛球",
		Time:        nextWeek,
		Location:    "大学城体育馆",
		Tags:        []string{"运动", "羽毛球"},
		Description: "水平不限，场地已订，欢迎来打球",
		CreatorID:   ming.ID,
	})
	store.AddActivity(domain.ActivityDetail{
		Title:       "夜跑小队",
		Time:        nextWeek,
		Location:    "滨江步道",
		Tags:        []string{"夜跑"},
		Description: "五公里慢跑，配速随意",
		CreatorID:   hong.ID,
	})

	store.SeedApplication(badminton.ID, hong.ID, domain.StatusPending)
	store.SeedApplication(badminton.ID, lei.ID, domain.StatusAccepted)
}
