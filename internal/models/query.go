package models

import "encoding/json"

// QueryName identifies one of the fixed set of named content queries.
type QueryName string

const (
	QueryAllPosts        QueryName = "AllPosts"
	QueryPostBySlug      QueryName = "PostBySlug"
	QueryAllPostSlugs    QueryName = "AllPostSlugs"
	QueryCategories      QueryName = "Categories"
	QueryTags            QueryName = "Tags"
	QueryUsers           QueryName = "Users"
	QueryGeneralSettings QueryName = "GeneralSettings"
	QueryPostsByCategory QueryName = "PostsByCategory"
	QueryPostsByTag      QueryName = "PostsByTag"
	QueryPostsByAuthor   QueryName = "PostsByAuthor"
	QuerySearch          QueryName = "Search"
	QueryRecentPosts     QueryName = "RecentPosts"
)

// ContentQuery is a named content query plus its variables. Immutable once
// constructed; callers build a fresh value per execution.
type ContentQuery struct {
	Name      QueryName
	Variables map[string]interface{}
}

// QueryResult is the successful outcome of executing a content query: the
// raw payload of the query's root field. Typed decoding happens at the
// executor boundary; failures are carried as *QueryError instead.
type QueryResult struct {
	Data json.RawMessage
}
