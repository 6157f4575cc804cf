package graphql

import "go-content-cache/internal/models"

// querySpec binds a named query to its GraphQL document and the root field
// its result lives under.
type querySpec struct {
	Document  string
	RootField string
}

const postListFields = `
        id
        title
        slug
        excerpt
        date
        modified
        author {
          node {
            name
            firstName
            lastName
            slug
            avatar {
              url
            }
          }
        }
        featuredImage {
          node {
            sourceUrl
            altText
            mediaDetails {
              width
              height
            }
          }
        }
        categories {
          nodes {
            name
            slug
          }
        }
        tags {
          nodes {
            name
            slug
          }
        }`

// queries is the fixed set of named content queries. Execution of any other
// name fails with an invalid_query classification.
var queries = map[models.QueryName]querySpec{
	models.QueryAllPosts: {
		RootField: "posts",
		Document: `query GetAllPosts($first: Int = 10, $after: String) {
    posts(first: $first, after: $after, where: { status: PUBLISH }) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {` + postListFields + `
      }
    }
  }`,
	},
	models.QueryRecentPosts: {
		RootField: "posts",
		Document: `query GetRecentPosts($first: Int = 5) {
    posts(first: $first, where: { status: PUBLISH }) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {` + postListFields + `
      }
    }
  }`,
	},
	models.QueryPostBySlug: {
		RootField: "post",
		Document: `query GetPostBySlug($slug: ID!) {
    post(id: $slug, idType: SLUG) {
      id
      title
      content
      excerpt
      date
      modified
      slug
      author {
        node {
          name
          firstName
          lastName
          slug
          description
          avatar {
            url
          }
        }
      }
      featuredImage {
        node {
          sourceUrl
          altText
          mediaDetails {
            width
            height
          }
        }
      }
      categories {
        nodes {
          name
          slug
        }
      }
      tags {
        nodes {
          name
          slug
        }
      }
    }
  }`,
	},
	models.QueryAllPostSlugs: {
		RootField: "posts",
		Document: `query GetAllPostSlugs {
    posts(first: 1000, where: { status: PUBLISH }) {
      nodes {
        slug
      }
    }
  }`,
	},
	models.QueryCategories: {
		RootField: "categories",
		Document: `query GetCategories {
    categories(first: 100, where: { hideEmpty: true }) {
      nodes {
        id
        name
        slug
        count
        parentId
        description
      }
    }
  }`,
	},
	models.QueryTags: {
		RootField: "tags",
		Document: `query GetTags($first: Int = 100) {
    tags(first: $first, where: { hideEmpty: true }) {
      nodes {
        id
        name
        slug
        count
      }
    }
  }`,
	},
	models.QueryUsers: {
		RootField: "users",
		Document: `query GetUsers($first: Int = 100) {
    users(first: $first) {
      nodes {
        id
        name
        firstName
        lastName
        slug
        description
        avatar {
          url
        }
      }
    }
  }`,
	},
	models.QueryGeneralSettings: {
		RootField: "generalSettings",
		Document: `query GetGeneralSettings {
    generalSettings {
      title
      description
      url
    }
  }`,
	},
	models.QueryPostsByCategory: {
		RootField: "category",
		Document: `query GetPostsByCategory($slug: ID!, $first: Int = 10, $after: String) {
    category(id: $slug, idType: SLUG) {
      name
      slug
      description
      posts(first: $first, after: $after, where: { status: PUBLISH }) {
        pageInfo {
          hasNextPage
          endCursor
        }
        nodes {` + postListFields + `
        }
      }
    }
  }`,
	},
	models.QueryPostsByTag: {
		RootField: "tag",
		Document: `query GetPostsByTag($slug: ID!, $first: Int = 10, $after: String) {
    tag(id: $slug, idType: SLUG) {
      name
      slug
      description
      posts(first: $first, after: $after, where: { status: PUBLISH }) {
        pageInfo {
          hasNextPage
          endCursor
        }
        nodes {` + postListFields + `
        }
      }
    }
  }`,
	},
	models.QueryPostsByAuthor: {
		RootField: "user",
		Document: `query GetPostsByAuthor($slug: ID!, $first: Int = 10, $after: String) {
    user(id: $slug, idType: SLUG) {
      name
      slug
      description
      posts(first: $first, after: $after, where: { status: PUBLISH }) {
        pageInfo {
          hasNextPage
          endCursor
        }
        nodes {` + postListFields + `
        }
      }
    }
  }`,
	},
	models.QuerySearch: {
		RootField: "posts",
		Document: `query SearchPosts($search: String!, $first: Int = 10, $after: String) {
    posts(first: $first, after: $after, where: { search: $search, status: PUBLISH }) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {` + postListFields + `
      }
    }
  }`,
	},
}
