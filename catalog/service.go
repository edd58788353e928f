package catalog

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/user/mercato-go/apperror"
)

const collectionName = "articoli"

// searchFields are the article fields covered by free-text search.
var searchFields = []string{
	"nome_prodotto",
	"descrizione_prodotto",
	"marca",
	"categoria",
	"ingredienti",
}

// Service runs the catalog queries against the articoli collection.
type Service struct {
	coll *mongo.Collection
}

// NewService creates the catalog service.
func NewService(database *mongo.Database) *Service {
	return &Service{coll: database.Collection(collectionName)}
}

// List returns every article.
func (s *Service) List(ctx context.Context) ([]Article, error) {
	return s.find(ctx, bson.M{})
}

// ListByCategory returns articles whose category matches literally.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Article, error) {
	return s.find(ctx, bson.M{"categoria": category})
}

// Search returns articles where any of the searchFields contains term,
// case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]Article, error) {
	// The term is treated as a literal substring, not a pattern.
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(searchFields))
	for _, field := range searchFields {
		or = append(or, bson.M{field: pattern})
	}
	return s.find(ctx, bson.M{"$or": or})
}

// Insert stores a new article document.
func (s *Service) Insert(ctx context.Context, article Article) error {
	if _, err := s.coll.InsertOne(ctx, article); err != nil {
		return apperror.NewDatabaseError("failed to insert article", err)
	}
	return nil
}

// DeleteByArticleID removes the article with the given numeric id.
func (s *Service) DeleteByArticleID(ctx context.Context, articleID int) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"Id_art": articleID})
	if err != nil {
		return apperror.NewDatabaseError("failed to delete article", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("article %d not found", articleID), nil)
	}
	return nil
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]Article, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to query articles", err)
	}
	defer cursor.Close(ctx)

	articles := []Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode articles", err)
	}
	return articles, nil
}
