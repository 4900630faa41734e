package domain

import "time"

// BlogPost is a published marketing article.
type BlogPost struct {
	ID          string
	Title       string
	Excerpt     string
	Body        string
	Category    string
	Author      string
	PublishedAt time.Time
}

// FAQ is a help-center question/answer pair.
type FAQ struct {
	ID       string
	Category string
	Question string
	Answer   string
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID          string
	Name        string
	Email       string
	Subject     string
	Body        string
	SubmittedAt time.Time
}
