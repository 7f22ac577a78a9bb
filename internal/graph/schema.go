// Package graph exposes the API as a GraphQL schema with resolvers backed by
// the service layer. Execution is delegated to graph-gophers/graphql-go;
// subscriptions stream over the graphql-transport-ws websocket protocol.
package graph

// Schema is the external contract of the API. Operations marked as requiring
// authentication expect an "Authorization: Bearer <token>" header on the
// request.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
		subscription: Subscription
	}

	type User {
		id: ID!
		username: String!
		email: String!
		token: String
	}

	type Movie {
		id: ID!
		title: String!
		duration: Int!
		releaseDate: String!
		actors: [String!]!
		createdAt: String!
		ratings: [Rating!]!
		ratingCount: Int!
		grade: Int!
		username: String!
		user: ID!
	}

	type Rating {
		username: String!
		score: Int!
		createdAt: String!
	}

	type NewestRating {
		rating: Rating!
		movieTitle: String!
	}

	type MoviesConnection {
		movies: [Movie!]!
		cursor: String!
		currentPage: Int!
		hasMore: Boolean!
	}

	input RegisterInput {
		username: String!
		email: String!
		password: String!
		confirmPassword: String!
	}

	input LoginInput {
		username: String!
		password: String!
	}

	input AddMovieInput {
		# When movieId is set the submission updates that movie; otherwise it
		# creates a new one (or idempotently updates the caller's own movie
		# with the same title).
		movieId: ID
		title: String!
		duration: Int!
		releaseDate: String!
		actors: [String!]!
	}

	input AddRatingInput {
		movieId: ID!
		# 1-5 rates the movie, 0 retracts the caller's rating.
		score: Int!
	}

	input FilterInput {
		onlyMine: Boolean!
		sortField: String!
		sortOrder: String!
	}

	input PaginationInput {
		pageNumber: Int
		pageSize: Int
		filter: FilterInput
	}

	type Query {
		currentUser: User!
		getMovies(paginationParams: PaginationInput): MoviesConnection!
		getMovie(movieId: ID!): Movie!
	}

	type Mutation {
		register(registerInput: RegisterInput!): User!
		login(loginInput: LoginInput!): User!
		addMovie(addMovieInput: AddMovieInput!): Movie!
		deleteMovie(movieId: ID!): String!
		addRating(addRatingInput: AddRatingInput!): Movie!
	}

	type Subscription {
		newestRating: NewestRating!
	}
`
