package models

import (
	"time"

	"github.com/lib/pq"
)

// Membership types. Standard members cannot create events.
const (
	TypeFounding   = "Founding"
	TypeStandard   = "Standard"
	TypeTravelHost = "Travel Host"
)

// Invite statuses.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

type User struct {
	UserID              string     `json:"userId" db:"user_id"`
	Email               string     `json:"email" db:"email"`
	Name                string     `json:"name" db:"name"`
	MembershipType      string     `json:"membershipType" db:"membership_type"`
	IsAdmin             bool       `json:"isAdmin" db:"is_admin"`
	PasswordHash        *string    `json:"-" db:"password_hash"`
	RegistrationToken   *string    `json:"-" db:"registration_token"`
	ResetToken          *string    `json:"-" db:"reset_token"`
	ResetTokenExpiresAt *time.Time `json:"-" db:"reset_token_expires_at"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
}

type Session struct {
	SessionID string    `json:"sessionId" db:"session_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

type MembershipApplication struct {
	ApplicationID  string         `json:"applicationId" db:"application_id"`
	FirstName      string         `json:"firstName" db:"first_name"`
	LastName       string         `json:"lastName" db:"last_name"`
	Email          string         `json:"email" db:"email"`
	Phone          string         `json:"phone" db:"phone"`
	Reason         string         `json:"reason" db:"reason"`
	Referral       string         `json:"referral" db:"referral"`
	Comments       string         `json:"comments" db:"comments"`
	Interests      pq.StringArray `json:"interests" db:"interests"`
	MembershipType string         `json:"membershipType" db:"membership_type"`
	// Accepted is nil while the application is pending.
	Accepted  *bool     `json:"accepted" db:"accepted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type PendingProperty struct {
	PropertyID    string `json:"propertyId" db:"property_id"`
	ApplicationID string `json:"applicationId" db:"application_id"`
	Address       string `json:"address" db:"address"`
	PropertyType  string `json:"propertyType" db:"property_type"`
	Description   string `json:"description" db:"description"`
	Availability  string `json:"availability" db:"availability"`
}

type Event struct {
	EventID     string    `json:"eventId" db:"event_id"`
	Slug        string    `json:"slug" db:"slug"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartTime   time.Time `json:"startTime" db:"start_time"`
	EndTime     time.Time `json:"endTime" db:"end_time"`
	IsPhysical  bool      `json:"isPhysical" db:"is_physical"`
	Location    string    `json:"location" db:"location"`
	VirtualLink string    `json:"virtualLink" db:"virtual_link"`
	EventType   string    `json:"eventType" db:"event_type"`
	Exclusivity string    `json:"exclusivity" db:"exclusivity"`
	Color       string    `json:"color" db:"color"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Participants []Participant `json:"participants" db:"-"`
}

// Participant is the (id, name) projection joined from event_users.
type Participant struct {
	UserID string `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`
}

type EventInvite struct {
	InviteID  string    `json:"inviteId" db:"invite_id"`
	EventID   string    `json:"eventId" db:"event_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	Status    string    `json:"status" db:"status"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Media struct {
	MediaID     string         `json:"mediaId" db:"media_id"`
	UserID      string         `json:"userId" db:"user_id"`
	EventID     *string        `json:"eventId" db:"event_id"`
	URL         string         `json:"url" db:"url"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// Commentable target kinds. Comments attach to either an event or an image.
const (
	TargetEvent = "event"
	TargetImage = "image"
)

type Comment struct {
	CommentID  string    `json:"commentId" db:"comment_id"`
	TargetKind string    `json:"targetKind" db:"target_kind"`
	TargetID   string    `json:"targetId" db:"target_id"`
	UserID     string    `json:"userId" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	AuthorName string `json:"authorName" db:"author_name"`
	LikeCount  int    `json:"likeCount" db:"like_count"`
	LikedByMe  bool   `json:"likedByMe" db:"liked_by_me"`
}
