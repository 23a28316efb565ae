package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/news"
)

func TestSearch_RecordsHistoryForLoggedInUser(t *testing.T) {
	gw := &fakeGateway{result: &news.Result{StatusCode: 200, Body: []byte(`{}`), ArticleCount: 7}}
	history := &fakeHistory{}
	s := NewSearchService(gw, history)

	_, err := s.Search(context.Background(), "asha", "cricket", 1)
	require.NoError(t, err)

	require.Len(t, history.entries, 1)
	assert.Equal(t, domain.SearchHistoryEntry{Username: "asha", Query: "cricket", ResultsCount: 7}, history.entries[0])
}

func TestSearch_AnonymousLeavesNoHistory(t *testing.T) {
	gw := &fakeGateway{result: &news.Result{StatusCode: 200, ArticleCount: 3}}
	history := &fakeHistory{}
	s := NewSearchService(gw, history)

	_, err := s.Search(context.Background(), "", "cricket", 1)
	require.NoError(t, err)
	assert.Empty(t, history.entries)
}

func TestSearch_EmptyQueryRecordedAsDefault(t *testing.T) {
	gw := &fakeGateway{result: &news.Result{StatusCode: 200}}
	history := &fakeHistory{}
	s := NewSearchService(gw, history)

	_, err := s.Search(context.Background(), "asha", "  ", 1)
	require.NoError(t, err)
	require.Len(t, history.entries, 1)
	assert.Equal(t, news.DefaultQuery, history.entries[0].Query)
}

func TestSearch_GatewayFailureLeavesNoHistory(t *testing.T) {
	gw := &fakeGateway{err: &news.GatewayError{Message: "connection refused"}}
	history := &fakeHistory{}
	s := NewSearchService(gw, history)

	_, err := s.Search(context.Background(), "asha", "x", 1)
	var gwErr *news.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Empty(t, history.entries)
}

func TestSearch_HistoryWriteFailure(t *testing.T) {
	gw := &fakeGateway{result: &news.Result{StatusCode: 200}}
	history := &fakeHistory{createErr: errors.New("readonly database")}
	s := NewSearchService(gw, history)

	_, err := s.Search(context.Background(), "asha", "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record search")
}

func TestHistory_LimitedToTen(t *testing.T) {
	history := &fakeHistory{}
	for i := 0; i < 15; i++ {
		history.entries = append(history.entries, domain.SearchHistoryEntry{Username: "asha", Query: fmt.Sprintf("q%d", i)})
	}
	s := NewSearchService(&fakeGateway{}, history)

	entries, err := s.History(context.Background(), "asha")
	require.NoError(t, err)
	assert.Len(t, entries, HistoryLimit)
	assert.Equal(t, HistoryLimit, history.lastLimit)
	assert.Equal(t, "q14", entries[0].Query)
}
