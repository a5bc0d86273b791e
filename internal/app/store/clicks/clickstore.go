// internal/app/store/clicks/clickstore.go
package clickstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/normalize"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// ErrNotFound is returned when a user has no click history yet.
var ErrNotFound = errors.New("no click history for user")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clickcounts")}
}

// maxLogAttempts bounds the insert race retry in LogClick. Two passes are
// enough in practice; the third absorbs a concurrent document delete.
const maxLogAttempts = 3

// LogClick increments the (category, subcategory) tally for a user by one.
// The whole increment happens through single-document conditional updates,
// never read-modify-write, so concurrent clicks cannot lose counts:
//
//  1. both entries exist: $inc both via array filters
//  2. category exists, subcategory does not: $inc category, $push subentry
//  3. neither exists: upsert the document with a fresh category entry
//
// If step 3 races another writer creating the same category, the loop
// retries from step 1 and lands in an $inc path.
func (s *Store) LogClick(ctx context.Context, userID, category, subCategory string) error {
	category = normalize.Category(category)
	subCategory = normalize.Category(subCategory)
	now := time.Now().UTC()

	for attempt := 0; attempt < maxLogAttempts; attempt++ {
		// Step 1: both the category and subcategory entries exist.
		res, err := s.c.UpdateOne(ctx,
			bson.M{
				"userId": userID,
				"categories": bson.M{"$elemMatch": bson.M{
					"category":                  category,
					"subCategories.subCategory": subCategory,
				}},
			},
			bson.M{
				"$inc": bson.M{
					"categories.$[c].categoryCount":                      1,
					"categories.$[c].subCategories.$[s].subCategoryCount": 1,
				},
				"$set": bson.M{"updatedAt": now},
			},
			options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: []interface{}{
					bson.M{"c.category": category},
					bson.M{"s.subCategory": subCategory},
				},
			}))
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// Step 2: the category exists without this subcategory. The $ne
		// guard matters: a step-3 upsert racing ahead of us may have
		// already created the subcategory entry, and an unguarded $push
		// here would duplicate it. On a miss the loop retries into step 1.
		res, err = s.c.UpdateOne(ctx,
			bson.M{
				"userId": userID,
				"categories": bson.M{"$elemMatch": bson.M{
					"category":                  category,
					"subCategories.subCategory": bson.M{"$ne": subCategory},
				}},
			},
			bson.M{
				"$inc": bson.M{"categories.$.categoryCount": 1},
				"$push": bson.M{"categories.$.subCategories": models.SubCategoryCount{
					SubCategory:      subCategory,
					SubCategoryCount: 1,
				}},
				"$set": bson.M{"updatedAt": now},
			})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// Step 3: no entry for this category yet. The $ne guard keeps a
		// concurrent step-3 writer from producing two entries for the same
		// category; on upsert the unique userId index rejects a second
		// document and we retry.
		_, err = s.c.UpdateOne(ctx,
			bson.M{"userId": userID, "categories.category": bson.M{"$ne": category}},
			bson.M{
				"$push": bson.M{"categories": models.CategoryCount{
					Category:      category,
					CategoryCount: 1,
					SubCategories: []models.SubCategoryCount{{
						SubCategory:      subCategory,
						SubCategoryCount: 1,
					}},
				}},
				"$set": bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{
					"userId":         userID,
					"schema_version": models.ClickCountSchemaVersion,
				},
			},
			options.Update().SetUpsert(true))
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
		// Lost the upsert race; the document exists now, retry from step 1.
	}
	return errors.New("click increment did not converge")
}

// GetByUserID loads the full click tally for one user.
func (s *Store) GetByUserID(ctx context.Context, userID string) (*models.ClickCount, error) {
	var cc models.ClickCount
	if err := s.c.FindOne(ctx, bson.M{"userId": userID}).Decode(&cc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cc, nil
}
