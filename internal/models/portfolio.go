package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Skill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	Title       string             `bson:"title" json:"title"`
	Proficiency string             `bson:"proficiency" json:"proficiency"`
	Svg         MediaRef           `bson:"svg" json:"svg"`
}

type Project struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	GitRepoLink   string             `bson:"git_repo_link,omitempty" json:"gitRepoLink,omitempty"`
	ProjectLink   string             `bson:"project_link,omitempty" json:"projectLink,omitempty"`
	Technologies  string             `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Stack         string             `bson:"stack,omitempty" json:"stack,omitempty"`
	Deployed      string             `bson:"deployed,omitempty" json:"deployed,omitempty"`
	ProjectBanner MediaRef           `bson:"project_banner" json:"projectBanner"`
}

type TimelineRange struct {
	From string `bson:"from" json:"from"`
	To   string `bson:"to,omitempty" json:"to,omitempty"`
}

type Timeline struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Timeline    TimelineRange      `bson:"timeline" json:"timeline"`
}

// Message is a contact-form submission from the public portfolio.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	SenderName string             `bson:"sender_name" json:"senderName"`
	Subject    string             `bson:"subject" json:"subject"`
	Message    string             `bson:"message" json:"message"`
}

type SoftwareApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Name      string             `bson:"name" json:"name"`
	Svg       MediaRef           `bson:"svg" json:"svg"`
}
