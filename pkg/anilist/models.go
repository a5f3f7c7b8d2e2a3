package anilist

import "fmt"

type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// Preferred returns the romaji title, falling back to the native one.
func (t Title) Preferred() string {
	if t.Romaji != "" {
		return t.Romaji
	}
	if t.English != "" {
		return t.English
	}
	return t.Native
}

// FuzzyDate is a partially known date; zero fields are unknown.
type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d FuzzyDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String renders the known parts as dd/mm/yyyy.
func (d FuzzyDate) String() string {
	var s string
	if d.Day > 0 {
		s = fmt.Sprintf("%02d", d.Day)
	}
	if d.Month > 0 {
		if s != "" {
			s += "/"
		}
		s += fmt.Sprintf("%02d", d.Month)
	}
	if d.Year > 0 {
		if s != "" {
			s += "/"
		}
		s += fmt.Sprintf("%d", d.Year)
	}
	return s
}

type Image struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Medium     string `json:"medium"`
}

// Largest returns the biggest available image url.
func (i Image) Largest() string {
	switch {
	case i.ExtraLarge != "":
		return i.ExtraLarge
	case i.Large != "":
		return i.Large
	default:
		return i.Medium
	}
}

type Anime struct {
	ID           int       `json:"id"`
	IDMal        int       `json:"idMal"`
	Title        Title     `json:"title"`
	Format       string    `json:"format"`
	Status       string    `json:"status"`
	Description  string    `json:"description"`
	Genres       []string  `json:"genres"`
	Episodes     int       `json:"episodes"`
	Duration     int       `json:"duration"`
	AverageScore int       `json:"averageScore"`
	StartDate    FuzzyDate `json:"startDate"`
	EndDate      FuzzyDate `json:"endDate"`
	CoverImage   Image     `json:"coverImage"`
	BannerImage  string    `json:"bannerImage"`
	SiteURL      string    `json:"siteUrl"`
}

type Manga struct {
	ID           int       `json:"id"`
	IDMal        int       `json:"idMal"`
	Title        Title     `json:"title"`
	Format       string    `json:"format"`
	Status       string    `json:"status"`
	Description  string    `json:"description"`
	Genres       []string  `json:"genres"`
	Chapters     int       `json:"chapters"`
	Volumes      int       `json:"volumes"`
	AverageScore int       `json:"averageScore"`
	StartDate    FuzzyDate `json:"startDate"`
	EndDate      FuzzyDate `json:"endDate"`
	CoverImage   Image     `json:"coverImage"`
	BannerImage  string    `json:"bannerImage"`
	SiteURL      string    `json:"siteUrl"`
}

type CharacterName struct {
	Full   string `json:"full"`
	Native string `json:"native"`
}

type Character struct {
	ID          int           `json:"id"`
	Name        CharacterName `json:"name"`
	Image       Image         `json:"image"`
	Description string        `json:"description"`
	Gender      string        `json:"gender"`
	Age         string        `json:"age"`
	DateOfBirth FuzzyDate     `json:"dateOfBirth"`
	Favourites  int           `json:"favourites"`
	SiteURL     string        `json:"siteUrl"`
}

type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	About       string `json:"about"`
	Avatar      Image  `json:"avatar"`
	BannerImage string `json:"bannerImage"`
	SiteURL     string `json:"siteUrl"`
	CreatedAt   int64  `json:"createdAt"`
}
