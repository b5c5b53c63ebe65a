package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/futig/interview-agent/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisHistory(t *testing.T) (*HistoryRedis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewHistoryRedis(client, "interview:history:", time.Hour), mr
}

func historyStores(t *testing.T) map[string]HistoryStore {
	redisStore, _ := newRedisHistory(t)
	return map[string]HistoryStore{
		"memory": NewHistoryMemory(time.Hour, time.Minute),
		"redis":  redisStore,
	}
}

func exchange(i int) entity.QAExchange {
	return entity.QAExchange{
		QuestionText: fmt.Sprintf("q%d", i),
		AnswerText:   fmt.Sprintf("a%d", i),
		OccurredAt:   time.Date(2026, 3, 1, 12, 0, i, 0, time.UTC),
	}
}

func TestHistoryStoreAppendKeepsOrder(t *testing.T) {
	for name, store := range historyStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 25

			for i := 0; i < n; i++ {
				require.NoError(t, store.Append(ctx, "s1", exchange(i)))
			}

			history, err := store.Read(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, history, n)
			for i, ex := range history {
				assert.Equal(t, fmt.Sprintf("q%d", i), ex.QuestionText)
				assert.Equal(t, fmt.Sprintf("a%d", i), ex.AnswerText)
				assert.True(t, exchange(i).OccurredAt.Equal(ex.OccurredAt))
			}
		})
	}
}

func TestHistoryStoreUnknownSession(t *testing.T) {
	for name, store := range historyStores(t) {
		t.Run(name, func(t *testing.T) {
			history, err := store.Read(context.Background(), "missing")
			require.NoError(t, err)
			assert.NotNil(t, history)
			assert.Empty(t, history)
		})
	}
}

func TestHistoryStoreKeepsEvaluation(t *testing.T) {
	for name, store := range historyStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ex := exchange(1)
			ex.Evaluation = &entity.EvaluationResult{Score: 91, RubricLevel: entity.RubricExcellent, Strengths: []string{"clear"}}

			require.NoError(t, store.Append(ctx, "s1", ex))

			history, err := store.Read(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, history, 1)
			require.NotNil(t, history[0].Evaluation)
			assert.Equal(t, 91, history[0].Evaluation.Score)
			assert.Equal(t, entity.RubricExcellent, history[0].Evaluation.RubricLevel)
		})
	}
}

func TestHistoryStoreDelete(t *testing.T) {
	for name, store := range historyStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, "s1", exchange(0)))
			require.NoError(t, store.Append(ctx, "s2", exchange(0)))

			require.NoError(t, store.Delete(ctx, "s1"))

			history, err := store.Read(ctx, "s1")
			require.NoError(t, err)
			assert.Empty(t, history)

			history, err = store.Read(ctx, "s2")
			require.NoError(t, err)
			assert.Len(t, history, 1)
		})
	}
}

func TestHistoryStoreConcurrentAppends(t *testing.T) {
	for name, store := range historyStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const workers, perWorker = 8, 20

			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						assert.NoError(t, store.Append(ctx, "shared", exchange(w*perWorker+i)))
					}
				}(w)
			}
			wg.Wait()

			history, err := store.Read(ctx, "shared")
			require.NoError(t, err)
			assert.Len(t, history, workers*perWorker)
		})
	}
}

func TestHistoryMemoryReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryMemory(time.Hour, time.Minute)
	require.NoError(t, store.Append(ctx, "s1", exchange(0)))

	history, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	history[0].AnswerText = "mutated"

	again, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a0", again[0].AnswerText)
}

func TestHistoryMemorySessionsDoNotBlockEachOther(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryMemory(time.Hour, time.Minute)
	require.NoError(t, store.Append(ctx, "busy", exchange(0)))

	busy := store.bucket("busy")
	busy.mu.Lock()
	defer busy.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- store.Append(ctx, "idle", exchange(1))
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("append to another session blocked on a held bucket lock")
	}

	history, err := store.Read(ctx, "idle")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHistoryMemoryExpires(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryMemory(50*time.Millisecond, time.Hour)
	require.NoError(t, store.Append(ctx, "s1", exchange(0)))

	time.Sleep(100 * time.Millisecond)

	history, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoryRedisRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisHistory(t)

	require.NoError(t, store.Append(ctx, "s1", exchange(0)))
	assert.Equal(t, time.Hour, mr.TTL("interview:history:s1"))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.Append(ctx, "s1", exchange(1)))
	assert.Equal(t, time.Hour, mr.TTL("interview:history:s1"))

	mr.FastForward(2 * time.Hour)
	history, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoryRedisSessionsDoNotBlockEachOther(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisHistory(t)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				assert.NoError(t, store.Append(ctx, id, exchange(i)))
			}
		}(id)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("appends on two sessions did not finish")
	}

	for _, id := range []string{"a", "b"} {
		history, err := store.Read(ctx, id)
		require.NoError(t, err)
		assert.Len(t, history, 10)
	}
}

func TestHistoryRedisReadFailsOnCorruptItem(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisHistory(t)

	_, err := mr.Push("interview:history:s1", "{not json")
	require.NoError(t, err)

	_, err = store.Read(ctx, "s1")
	require.Error(t, err)
}
