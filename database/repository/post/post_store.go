package postRepo

import (
	"context"
	"fmt"

	"teamfeed/database/docstore"
	"teamfeed/models"
)

// Collection holds blog posts.
const Collection = "blogs"

// overfetch is the candidate window multiplier used when visibility has to
// be checked in memory.
const overfetch = 5

// StorePostRepo implements PostRepository on a document store.
type StorePostRepo struct {
	store      docstore.Store
	maxWindows int
}

// NewStorePostRepo creates a PostRepository. maxWindows bounds how many
// candidate windows one request may scan when filtering happens in memory.
func NewStorePostRepo(store docstore.Store, maxWindows int) *StorePostRepo {
	if maxWindows < 1 {
		maxWindows = 1
	}
	return &StorePostRepo{store: store, maxWindows: maxWindows}
}

// LatestVisible pushes every predicate the store can evaluate into the query
// and checks the rest in memory, paging through candidate windows until
// limit posts are found or the collection is exhausted.
func (r *StorePostRepo) LatestVisible(ctx context.Context, teams []string, limit int) ([]models.Post, error) {
	if len(teams) == 0 || limit <= 0 {
		return []models.Post{}, nil
	}

	native, local := docstore.Split(r.store, []docstore.Filter{
		{Field: "isDeleted", Op: docstore.OpEqual, Value: false},
		{Field: "teams.value", Op: docstore.OpContainsAny, Value: teams},
	})
	window := limit
	if len(local) > 0 {
		window = limit * overfetch
	}

	posts := make([]models.Post, 0, limit)
	for w := 0; w < r.maxWindows; w++ {
		docs, err := r.store.Query(ctx, docstore.Query{
			Collection: Collection,
			Filters:    native,
			OrderBy:    "createdAt",
			Descending: true,
			Offset:     w * window,
			Limit:      window,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query posts: %w", err)
		}
		for _, doc := range docs {
			if !docstore.MatchAll(doc.Data, local) {
				continue
			}
			var p models.Post
			if err := docstore.Decode(Collection, doc, &p); err != nil {
				return nil, err
			}
			p.ID = doc.ID
			posts = append(posts, p)
			if len(posts) == limit {
				return posts, nil
			}
		}
		if len(docs) < window {
			break
		}
	}
	return posts, nil
}
