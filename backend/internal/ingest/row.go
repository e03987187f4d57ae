package ingest

import (
	"strconv"
	"strings"

	"reddit-graph/backend/internal/graph"
	apperrors "reddit-graph/backend/pkg/errors"
)

// Row types found in the "type" column
const (
	TypeSubscribes = "Subscribes"
	TypeModerates  = "Moderates"
	TypePost       = "Post"
	TypeComment    = "Comment"
	TypeUpvote     = "Upvote"
	TypeDownvote   = "Downvote"
)

// Column names
const (
	ColType          = "type"
	ColUsername      = "username"
	ColFollowers     = "followers"
	ColUserKarma     = "user_karma"
	ColSubredditName = "subreddit_name"
	ColDescription   = "description"
	ColSubscribers   = "subscribers"
	ColTitle         = "title"
	ColPostText      = "post_text"
	ColPostKarma     = "post_karma"
	ColCommentText   = "comment_text"
	ColCommentKarma  = "comment_karma"
)

// RequiredColumns must all be present in the header
var RequiredColumns = []string{
	ColType, ColUsername, ColFollowers, ColUserKarma,
	ColSubredditName, ColDescription, ColSubscribers,
	ColTitle, ColPostText, ColPostKarma,
	ColCommentText, ColCommentKarma,
}

// header maps column names to their index in each record
type header map[string]int

func parseHeader(fields []string) (header, error) {
	h := make(header, len(fields))
	for i, name := range fields {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		h[strings.TrimSpace(name)] = i
	}

	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			return nil, apperrors.NewInputMissingColumn(col)
		}
	}
	return h, nil
}

// row is one data record addressed by column name. num is 1-based and
// excludes the header.
type row struct {
	num    int
	fields []string
	header header
}

func (r row) get(col string) string {
	return r.fields[r.header[col]]
}

// count parses an integer column; an empty cell reads as zero
func (r row) count(col string) (int64, error) {
	raw := strings.TrimSpace(r.get(col))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewInputMalformedRow(r.num, col, err)
	}
	return n, nil
}

func (r row) user() (graph.User, error) {
	followers, err := r.count(ColFollowers)
	if err != nil {
		return graph.User{}, err
	}
	karma, err := r.count(ColUserKarma)
	if err != nil {
		return graph.User{}, err
	}
	return graph.User{
		Username:  r.get(ColUsername),
		Followers: followers,
		Karma:     karma,
	}, nil
}

func (r row) subreddit() (graph.Subreddit, error) {
	subscribers, err := r.count(ColSubscribers)
	if err != nil {
		return graph.Subreddit{}, err
	}
	return graph.Subreddit{
		Name:        r.get(ColSubredditName),
		Description: r.get(ColDescription),
		Subscribers: subscribers,
	}, nil
}

func (r row) post() (graph.Post, error) {
	karma, err := r.count(ColPostKarma)
	if err != nil {
		return graph.Post{}, err
	}
	return graph.Post{
		Title: r.get(ColTitle),
		Text:  r.get(ColPostText),
		Karma: karma,
	}, nil
}

func (r row) comment() (graph.Comment, error) {
	karma, err := r.count(ColCommentKarma)
	if err != nil {
		return graph.Comment{}, err
	}
	return graph.Comment{
		Text:  r.get(ColCommentText),
		Karma: karma,
	}, nil
}
