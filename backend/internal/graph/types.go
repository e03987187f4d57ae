package graph

// ============================================================================
// Graph Types
// ============================================================================

// Node labels
const (
	LabelUser      = "User"
	LabelSubreddit = "Subreddit"
	LabelPost      = "Post"
	LabelComment   = "Comment"
	LabelPerson    = "Person"
)

// User is keyed by username, which carries a uniqueness constraint
type User struct {
	Username  string `json:"username"`
	Followers int64  `json:"num_of_followers"`
	Karma     int64  `json:"karma"`
}

// Subreddit is keyed by name, which carries a uniqueness constraint
type Subreddit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Subscribers int64  `json:"total_subscribers"`
}

// Post is matched by title; titles are not unique
type Post struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Karma int64  `json:"karma"`
}

// Comment is matched by its text; texts are not unique
type Comment struct {
	Text  string `json:"text"`
	Karma int64  `json:"karma"`
}

// WriteOutcome reports what a node create did to the store
type WriteOutcome int

const (
	// Created means a new node was written
	Created WriteOutcome = iota
	// AlreadyExists means a uniqueness constraint rejected the write
	AlreadyExists
)

func (o WriteOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// RelationshipKind is the relationship type written between a User and its target
type RelationshipKind string

const (
	RelSubscribes RelationshipKind = "SUBSCRIBES"
	RelModerates  RelationshipKind = "MODERATES"
	RelPublished  RelationshipKind = "FROM"
	RelUpvotes    RelationshipKind = "UPVOTES"
	RelDownvotes  RelationshipKind = "DOWNVOTES"
	RelCommented  RelationshipKind = "COMMENTED"
)

// relationshipTarget describes how the target endpoint of a kind is matched
type relationshipTarget struct {
	Label string
	Key   string
}

var relationshipTargets = map[RelationshipKind]relationshipTarget{
	RelSubscribes: {Label: LabelSubreddit, Key: "name"},
	RelModerates:  {Label: LabelSubreddit, Key: "name"},
	RelPublished:  {Label: LabelPost, Key: "title"},
	RelUpvotes:    {Label: LabelPost, Key: "title"},
	RelDownvotes:  {Label: LabelPost, Key: "title"},
	RelCommented:  {Label: LabelComment, Key: "text"},
}

// Target returns the label and key property the kind matches its end node on
func (k RelationshipKind) Target() (label, key string, ok bool) {
	t, ok := relationshipTargets[k]
	return t.Label, t.Key, ok
}

// ScoreMethod selects how the total neighbors score is computed
type ScoreMethod string

const (
	// ScoreGDS calls the Graph Data Science link prediction function
	ScoreGDS ScoreMethod = "gds"
	// ScoreCypher counts the neighbor union with plain Cypher
	ScoreCypher ScoreMethod = "cypher"
)

// NeighborScore is the result of a total neighbors lookup
type NeighborScore struct {
	Name1  string      `json:"name1"`
	Name2  string      `json:"name2"`
	Method ScoreMethod `json:"method"`
	Score  float64     `json:"score"`
}
