package repository

import (
	"teamfeed/database/docstore"
	chatRepo "teamfeed/database/repository/chat"
	notificationRepo "teamfeed/database/repository/notification"
	postRepo "teamfeed/database/repository/post"
	userRepo "teamfeed/database/repository/user"
)

// Re-export the repository interfaces.
type UserRepository = userRepo.UserRepository

type PostRepository = postRepo.PostRepository

type NotificationRepository = notificationRepo.NotificationRepository

type ChatRepository = chatRepo.ChatRepository

// Repositories groups every store-backed repository of the service.
type Repositories struct {
	Users         *userRepo.StoreUserRepo
	Posts         *postRepo.StorePostRepo
	Notifications *notificationRepo.StoreNotificationRepo
	Chats         *chatRepo.StoreChatRepo
}

// New builds all repositories on one shared store handle.
func New(store docstore.Store, feedMaxWindows int) *Repositories {
	return &Repositories{
		Users:         userRepo.NewStoreUserRepo(store),
		Posts:         postRepo.NewStorePostRepo(store, feedMaxWindows),
		Notifications: notificationRepo.NewStoreNotificationRepo(store),
		Chats:         chatRepo.NewStoreChatRepo(store),
	}
}
