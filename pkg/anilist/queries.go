package anilist

const mediaFields = `
	id
	idMal
	title { romaji english native }
	format
	status
	description(asHtml: false)
	genres
	averageScore
	startDate { year month day }
	endDate { year month day }
	coverImage { extraLarge large medium }
	bannerImage
	siteUrl
`

const animeFields = mediaFields + `
	episodes
	duration
`

const mangaFields = mediaFields + `
	chapters
	volumes
`

const characterFields = `
	id
	name { full native }
	image { large medium }
	description(asHtml: false)
	gender
	age
	dateOfBirth { year month day }
	favourites
	siteUrl
`

const userFields = `
	id
	name
	about(asHtml: false)
	avatar { large medium }
	bannerImage
	siteUrl
	createdAt
`

const animeQuery = `query ($id: Int) { Media(id: $id, type: ANIME) {` + animeFields + `} }`

const mangaQuery = `query ($id: Int) { Media(id: $id, type: MANGA) {` + mangaFields + `} }`

const characterQuery = `query ($id: Int) { Character(id: $id) {` + characterFields + `} }`

const userQuery = `query ($id: Int) { User(id: $id) {` + userFields + `} }`

const viewerQuery = `query { Viewer {` + userFields + `} }`

const searchAnimeQuery = `query ($search: String, $page: Int, $perPage: Int) {
	Page(page: $page, perPage: $perPage) { media(search: $search, type: ANIME) {` + animeFields + `} }
}`

const searchMangaQuery = `query ($search: String, $page: Int, $perPage: Int) {
	Page(page: $page, perPage: $perPage) { media(search: $search, type: MANGA) {` + mangaFields + `} }
}`

const searchCharacterQuery = `query ($search: String, $page: Int, $perPage: Int) {
	Page(page: $page, perPage: $perPage) { characters(search: $search) {` + characterFields + `} }
}`

const searchUserQuery = `query ($search: String, $page: Int, $perPage: Int) {
	Page(page: $page, perPage: $perPage) { users(name: $search) {` + userFields + `} }
}`
