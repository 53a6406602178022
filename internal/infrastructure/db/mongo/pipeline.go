package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Aggregation pipelines are assembled from the discrete stage constructors
// below. Each filter helper is a no-op when its value is absent, so a stage's
// presence is a pure function of which filter fields are non-empty.

// regexFilter adds a case-insensitive substring condition on field.
func regexFilter(query bson.M, field, value string) {
	if value == "" {
		return
	}
	query[field] = primitive.Regex{Pattern: value, Options: "i"}
}

// orRegexFilter adds a case-insensitive substring condition matching any of fields.
func orRegexFilter(query bson.M, value string, fields ...string) {
	if value == "" {
		return
	}
	or := make([]bson.M, len(fields))
	for i, f := range fields {
		or[i] = bson.M{f: primitive.Regex{Pattern: value, Options: "i"}}
	}
	query["$or"] = or
}

// exactFilter adds an equality condition on field.
func exactFilter(query bson.M, field, value string) {
	if value == "" {
		return
	}
	query[field] = value
}

// dateRangeFilter adds an inclusive range condition on field. Both bounds are
// required together; a lone bound is ignored.
func dateRangeFilter(query bson.M, field string, start, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	query[field] = bson.M{"$gte": start, "$lte": end}
}

func matchStage(query bson.M) bson.D {
	return bson.D{{Key: "$match", Value: query}}
}

func lookupStage(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	}}}
}

func unwindStage(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: path}}
}

func projectStage(fields bson.M) bson.D {
	return bson.D{{Key: "$project", Value: fields}}
}

func sortStage(keys bson.D) bson.D {
	return bson.D{{Key: "$sort", Value: keys}}
}

func skipStage(n int64) bson.D {
	return bson.D{{Key: "$skip", Value: n}}
}

func limitStage(n int64) bson.D {
	return bson.D{{Key: "$limit", Value: n}}
}

func countStage() bson.D {
	return bson.D{{Key: "$count", Value: "total"}}
}

// groupStages sums amount per the requested key combination, carrying the
// first-seen label per group, and sorts by totalAmount descending.
func groupStages(byCategory, byUsername bool) []bson.D {
	id := bson.M{}
	group := bson.M{"totalAmount": bson.M{"$sum": "$amount"}}
	project := bson.M{"_id": 0, "totalAmount": 1}

	if byCategory {
		id["category"] = "$categoryId"
		group["category"] = bson.M{"$first": "$categoryInfo.name"}
		project["category"] = 1
	}
	if byUsername {
		id["username"] = "$userId"
		group["username"] = bson.M{"$first": "$userInfo.username"}
		project["username"] = 1
	}
	group["_id"] = id

	return []bson.D{
		{{Key: "$group", Value: group}},
		projectStage(project),
		sortStage(bson.D{{Key: "totalAmount", Value: -1}}),
	}
}
