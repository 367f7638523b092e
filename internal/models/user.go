package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaRef points at an object stored on the media host.
type MediaRef struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	FullName string `bson:"full_name" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
	AboutMe  string `bson:"about_me" json:"aboutMe"`
	Password string `bson:"password,omitempty" json:"-"` // Don't return password in JSON

	Avatar MediaRef `bson:"avatar" json:"avatar"`
	Resume MediaRef `bson:"resume" json:"resume"`

	PortfolioURL string `bson:"portfolio_url,omitempty" json:"portfolioURL,omitempty"`
	GithubURL    string `bson:"github_url,omitempty" json:"githubURL,omitempty"`
	LeetcodeURL  string `bson:"leetcode_url,omitempty" json:"leetcodeURL,omitempty"`
	TwitterURL   string `bson:"twitter_url,omitempty" json:"twitterURL,omitempty"`
	LinkedInURL  string `bson:"linkedin_url,omitempty" json:"linkedInURL,omitempty"`
	FacebookURL  string `bson:"facebook_url,omitempty" json:"facebookURL,omitempty"`

	// Both are set together by a forgot-password request and cleared together
	// on reset or on failed delivery.
	ResetPasswordToken  string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"reset_password_expire,omitempty" json:"-"`
}
