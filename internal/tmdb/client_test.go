package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "mad max", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":76341,"title":"Mad Max: Fury Road","release_date":"2015-05-13","vote_average":8.1}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL)

	movies, err := client.SearchMovie(context.Background(), "mad max")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Mad Max: Fury Road", movies[0].Title)
	assert.Equal(t, 2015, movies[0].Year())
}

func TestGetMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/76341", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":76341,"title":"Mad Max: Fury Road","genres":[{"id":28,"name":"Action"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL)

	movie, err := client.GetMovie(context.Background(), 76341)
	require.NoError(t, err)
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Action", movie.Genres[0].Name)
}

func TestGetRecommendations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/76341/recommendations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"Dune"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL)

	movies, err := client.GetRecommendations(context.Background(), 76341)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Dune", movies[0].Title)
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key").WithBaseURL(srv.URL)

	_, err := client.SearchMovie(context.Background(), "anything")
	assert.ErrorContains(t, err, "tmdb returned status 401")
}

func TestMovieYear_Unknown(t *testing.T) {
	assert.Zero(t, Movie{ReleaseDate: ""}.Year())
	assert.Zero(t, Movie{ReleaseDate: "bad"}.Year())
}
