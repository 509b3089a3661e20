package graphql

// Query documents. The theme-grouped query is the only bulk listing the
// schema offers; everything "fetch all" is a flatten over its groups.

const postSelection = `
            id
            title
            slug
            date
            excerpt
            content
            featuredImage {
              node {
                sourceUrl
                altText
              }
            }
            author {
              node {
                name
                description
                avatar {
                  url
                }
              }
            }
            posts {
              decksubtitle
              estimatedReadTime
              externalMirror
              reference
              pullQoutes
            }
            seriesTag {
              nodes {
                name
                slug
              }
            }
            formats {
              nodes {
                name
                slug
              }
            }
            contentThemes {
              nodes {
                name
                slug
              }
            }`

const episodeSelection = `
            id
            title
            slug
            date
            content
            featuredImage {
              node {
                sourceUrl
                altText
              }
            }
            episodes {
              episodeNumber
              duration
              audioUrl
              videoUrl
              showNotes
              transcript
              coverImage {
                node {
                  sourceUrl
                  altText
                }
              }
              youtubeVideoId
              sources
            }
            seriesTag {
              nodes {
                name
                slug
              }
            }
            formats {
              nodes {
                name
                slug
              }
            }
            contentThemes {
              nodes {
                name
                slug
              }
            }`

const researchSelection = `
            id
            title
            slug
            date
            content
            featuredImage {
              node {
                sourceUrl
                altText
              }
            }
            researches {
              type
              author
              abstract
              pdfUpload {
                node {
                  mediaItemUrl
                  sourceUrl
                }
              }
              externalUrl
              citation
              keyFindings
            }
            seriesTag {
              nodes {
                name
                slug
              }
            }
            formats {
              nodes {
                name
                slug
              }
            }
            methods {
              nodes {
                name
                slug
              }
            }
            contentThemes {
              nodes {
                name
                slug
              }
            }`

// QueryContentThemes groups posts, episodes and research papers under the
// content-theme taxonomy with cursor pagination per connection.
const QueryContentThemes = `
  query GetContentThemes($slug: [String], $search: String, $first: Int, $after: String) {
    contentThemes(where: { slug: $slug }) {
      nodes {
        id
        name
        slug
        posts(where: { search: $search }, first: $first, after: $after) {
          pageInfo {
            hasNextPage
            endCursor
          }
          nodes {` + postSelection + `
          }
        }
        episodes(where: { search: $search }, first: $first, after: $after) {
          pageInfo {
            hasNextPage
            endCursor
          }
          nodes {` + episodeSelection + `
          }
        }
        researches(where: { search: $search }, first: $first, after: $after) {
          pageInfo {
            hasNextPage
            endCursor
          }
          nodes {` + researchSelection + `
          }
        }
      }
    }
  }
`

// QueryPost fetches a single post by node ID or slug.
const QueryPost = `
  query GetPost($id: ID!, $idType: PostIdType!) {
    post(id: $id, idType: $idType) {` + postSelection + `
    }
  }
`

// QueryEpisode fetches a single episode by node ID or slug.
const QueryEpisode = `
  query GetEpisode($id: ID!, $idType: EpisodeIdType!) {
    episode(id: $id, idType: $idType) {` + episodeSelection + `
    }
  }
`

// QueryResearch fetches a single research paper by node ID or slug.
const QueryResearch = `
  query GetResearch($id: ID!, $idType: ResearchIdType!) {
    research(id: $id, idType: $idType) {` + researchSelection + `
    }
  }
`

// QueryThemeList fetches the taxonomy terms with usage counts.
const QueryThemeList = `
  query GetAllThemes {
    contentThemes(first: 100) {
      nodes {
        id
        databaseId
        name
        slug
        description
        count
      }
    }
  }
`
