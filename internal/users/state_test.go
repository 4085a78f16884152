package users

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestState_CreateAssignsDistinctIDs(t *testing.T) {
	s := NewState()

	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		u := s.Create(ProtoUser{Name: "u"})
		require.False(t, seen[u.ID])
		seen[u.ID] = true
	}

	require.Len(t, seen, 100)
}

func TestState_ConcurrentCreates(t *testing.T) {
	const (
		workers = 8
		perWork = 50
	)

	s := NewState()

	ids := make(chan uint64, workers*perWork)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				ids <- s.Create(ProtoUser{Name: "u"}).ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uint64]bool{}
	for id := range ids {
		require.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}

	require.Len(t, seen, workers*perWork)
	require.Len(t, s.List(), workers*perWork)
}

func TestState_Update(t *testing.T) {
	type args struct {
		patch UserUpdate
	}

	type testcase struct {
		name string
		args args

		want User
	}

	base := ProtoUser{Name: "Alice", Email: "a@x.com"}

	tests := [...]testcase{
		{
			name: "name only",
			args: args{patch: UserUpdate{Name: strPtr("Bob")}},
			want: User{Name: "Bob", Email: "a@x.com"},
		},
		{
			name: "email only",
			args: args{patch: UserUpdate{Email: strPtr("b@x.com")}},
			want: User{Name: "Alice", Email: "b@x.com"},
		},
		{
			name: "both fields",
			args: args{patch: UserUpdate{Name: strPtr("Bob"), Email: strPtr("b@x.com")}},
			want: User{Name: "Bob", Email: "b@x.com"},
		},
		{
			name: "empty patch keeps everything",
			args: args{patch: UserUpdate{}},
			want: User{Name: "Alice", Email: "a@x.com"},
		},
		{
			name: "explicit empty string overwrites",
			args: args{patch: UserUpdate{Name: strPtr("")}},
			want: User{Name: "", Email: "a@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			created := s.Create(base)

			tt.want.ID = created.ID

			got, ok := s.Update(created.ID, tt.args.patch)
			require.True(t, ok)
			require.Equal(t, tt.want, got)

			stored, ok := s.Get(created.ID)
			require.True(t, ok)
			require.Equal(t, tt.want, stored)
		})
	}
}

func TestState_UpdateMissing(t *testing.T) {
	s := NewState()

	_, ok := s.Update(42, UserUpdate{Name: strPtr("Bob")})
	require.False(t, ok)
}

func TestState_DeleteIsTerminal(t *testing.T) {
	s := NewState()
	u := s.Create(ProtoUser{Name: "Alice"})

	deleted, ok := s.Delete(u.ID)
	require.True(t, ok)
	require.Equal(t, u, deleted)

	_, ok = s.Get(u.ID)
	require.False(t, ok)

	_, ok = s.Update(u.ID, UserUpdate{Name: strPtr("Bob")})
	require.False(t, ok)

	_, ok = s.Delete(u.ID)
	require.False(t, ok)
}

func TestState_UnknownID(t *testing.T) {
	s := NewState()
	s.Create(ProtoUser{Name: "Alice"})

	_, ok := s.Get(999)
	require.False(t, ok)

	_, ok = s.Update(999, UserUpdate{})
	require.False(t, ok)

	_, ok = s.Delete(999)
	require.False(t, ok)
}

func TestState_ListMatchesGets(t *testing.T) {
	s := NewState()

	for i := 0; i < 5; i++ {
		s.Create(ProtoUser{Name: "u"})
	}
	s.Delete(1)
	s.Delete(3)

	listed := map[uint64]bool{}
	for _, u := range s.List() {
		listed[u.ID] = true
	}

	for id := uint64(0); id < 5; id++ {
		_, ok := s.Get(id)
		require.Equal(t, ok, listed[id], "id %d", id)
	}
}

func TestState_CRUDScenario(t *testing.T) {
	s := NewState()

	created := s.Create(ProtoUser{Name: "Alice", Email: "a@x.com"})
	require.Equal(t, User{ID: 0, Name: "Alice", Email: "a@x.com"}, created)

	updated, ok := s.Update(0, UserUpdate{Name: strPtr("Bob")})
	require.True(t, ok)
	require.Equal(t, User{ID: 0, Name: "Bob", Email: "a@x.com"}, updated)

	deleted, ok := s.Delete(0)
	require.True(t, ok)
	require.Equal(t, User{ID: 0, Name: "Bob", Email: "a@x.com"}, deleted)

	_, ok = s.Get(0)
	require.False(t, ok)
}
