package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestKeyedMutex_Exclusive(t *testing.T) {
	k := newKeyedMutex()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, "group")
			if err != nil {
				t.Errorf("Lock failed: %v", err)
				return
			}
			mu.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("expected at most one holder, saw %d", maxSeen)
	}
	if n := k.size(); n != 0 {
		t.Errorf("expected no tracked keys, got %d", n)
	}
}

func TestKeyedMutex_DistinctKeys(t *testing.T) {
	k := newKeyedMutex()
	ctx := context.Background()

	unlockA, err := k.Lock(ctx, "a")
	if err != nil {
		t.Fatalf("Lock(a) failed: %v", err)
	}
	defer unlockA()

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	unlockB, err := k.Lock(waitCtx, "b")
	if err != nil {
		t.Fatalf("Lock(b) blocked behind a: %v", err)
	}
	unlockB()
}

func TestKeyedMutex_ContextDone(t *testing.T) {
	k := newKeyedMutex()

	unlock, err := k.Lock(context.Background(), "group")
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	if _, err := k.Lock(ctx, "group"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if waited := time.Since(start); waited > 5*time.Second {
		t.Errorf("Lock kept waiting %v after the deadline", waited)
	}
	if n := k.size(); n != 1 {
		t.Errorf("expected only the holder tracked, got %d keys", n)
	}

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if _, err := k.Lock(cancelled, "group"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	unlock()
	if n := k.size(); n != 0 {
		t.Errorf("expected no tracked keys after release, got %d", n)
	}

	again, err := k.Lock(context.Background(), "group")
	if err != nil {
		t.Fatalf("Lock after release failed: %v", err)
	}
	again()
}

func TestApplyContribution_ContextDoneWhileGroupBusy(t *testing.T) {
	f := newFixture(t)
	group := f.group(t, "100")
	u := f.member(t, group, "ngozi")

	unlock, err := f.engine.locks.Lock(f.ctx, group.ID)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(f.ctx, 20*time.Millisecond)
	defer cancel()
	_, err = f.engine.ApplyContribution(ctx, ContributionInput{GroupID: group.ID, UserID: u.ID, Amount: "5"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	unlock()

	if got := f.collected(t, group.ID); got != "0.00" {
		t.Errorf("collected: got %s, want 0.00", got)
	}
	if n := f.engine.locks.size(); n != 0 {
		t.Errorf("expected all group locks released, %d remain", n)
	}

	if _, err := f.engine.ApplyContribution(f.ctx, ContributionInput{GroupID: group.ID, UserID: u.ID, Amount: "5"}); err != nil {
		t.Fatalf("ApplyContribution after release failed: %v", err)
	}
	if got := f.collected(t, group.ID); got != "5.00" {
		t.Errorf("collected: got %s, want 5.00", got)
	}
}
