package services

import (
	"errors"
	"testing"
	"time"

	"eyehunt/models"
)

func TestCreateGroupSeedsOwnerAndScore(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alpha")
	game := seedGame(t, db, models.GameStatusLobby, time.Hour)

	svc := NewGroupService(db)
	name := "Seekers"
	group, err := svc.CreateGroup(game.ID, &name, nil, 0, user.ID)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if group.MaxMembers != models.DefaultGroupMaxMembers {
		t.Errorf("max members = %d, want default %d", group.MaxMembers, models.DefaultGroupMaxMembers)
	}
	if len(group.Code) != 6 {
		t.Errorf("code %q, want 6 characters", group.Code)
	}

	var member models.GroupMember
	if err := db.Where("group_id = ? AND user_id = ?", group.ID, user.ID).Take(&member).Error; err != nil {
		t.Fatalf("load owner membership: %v", err)
	}
	if member.Role != models.GroupRoleOwner {
		t.Errorf("owner role = %q, want %q", member.Role, models.GroupRoleOwner)
	}

	var score models.GroupScore
	if err := db.Where("group_id = ? AND user_id = ?", group.ID, user.ID).Take(&score).Error; err != nil {
		t.Fatalf("load owner score: %v", err)
	}
	if score.Score != 0 || score.CapturesCount != 0 {
		t.Errorf("owner score = %d/%d, want 0/0", score.Score, score.CapturesCount)
	}
}

func TestCreateGroupResolvesActiveGame(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alpha")
	seedGame(t, db, models.GameStatusFinished, time.Hour)
	active := seedGame(t, db, models.GameStatusPlaying, time.Hour)

	svc := NewGroupService(db)
	group, err := svc.CreateGroup("", nil, nil, 0, user.ID)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if group.GameID != active.ID {
		t.Errorf("group bound to game %q, want active %q", group.GameID, active.ID)
	}
}

func TestCreateGroupNoActiveGame(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alpha")
	seedGame(t, db, models.GameStatusPlaying, -time.Hour) // already expired

	svc := NewGroupService(db)
	_, err := svc.CreateGroup("", nil, nil, 0, user.ID)
	if !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("err = %v, want ErrNoActiveGame", err)
	}
}

func TestCreateGroupRetriesCodeCollisions(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	seedGroupWithMember(t, db, game.ID, alpha.ID, "TAKEN1")

	svc := NewGroupService(db)
	codes := []string{"TAKEN1", "FRESH1"}
	svc.codeFn = func() string {
		code := codes[0]
		if len(codes) > 1 {
			codes = codes[1:]
		}
		return code
	}

	group, err := svc.CreateGroup(game.ID, nil, nil, 0, bravo.ID)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if group.Code != "FRESH1" {
		t.Errorf("code = %q, want regenerated FRESH1", group.Code)
	}
}

func TestCreateGroupCodeAllocationExhausted(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	seedGroupWithMember(t, db, game.ID, alpha.ID, "TAKEN1")

	svc := NewGroupService(db)
	svc.codeFn = func() string { return "TAKEN1" }

	_, err := svc.CreateGroup(game.ID, nil, nil, 0, bravo.ID)
	if !errors.Is(err, ErrCodeAllocationFailed) {
		t.Fatalf("err = %v, want ErrCodeAllocationFailed", err)
	}
}

func TestJoinGroup(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	group := seedGroupWithMember(t, db, game.ID, alpha.ID, "ABC123")

	svc := NewGroupService(db)
	joined, already, err := svc.JoinGroup("ABC123", bravo.ID)
	if err != nil {
		t.Fatalf("JoinGroup: %v", err)
	}
	if already {
		t.Error("already = true for a first join")
	}
	if joined.ID != group.ID {
		t.Errorf("joined group %q, want %q", joined.ID, group.ID)
	}

	count, err := svc.MemberCount(group.ID)
	if err != nil {
		t.Fatalf("MemberCount: %v", err)
	}
	if count != 2 {
		t.Errorf("member count = %d, want 2", count)
	}

	var score models.GroupScore
	if err := db.Where("group_id = ? AND user_id = ?", group.ID, bravo.ID).Take(&score).Error; err != nil {
		t.Fatalf("load joiner score: %v", err)
	}
	if score.Score != 0 || score.CapturesCount != 0 {
		t.Errorf("joiner score = %d/%d, want 0/0", score.Score, score.CapturesCount)
	}
}

func TestJoinGroupIdempotent(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	group := seedGroupWithMember(t, db, game.ID, alpha.ID, "ABC123")

	svc := NewGroupService(db)
	joined, already, err := svc.JoinGroup("ABC123", alpha.ID)
	if err != nil {
		t.Fatalf("JoinGroup: %v", err)
	}
	if !already {
		t.Error("already = false for an existing member")
	}
	if joined.ID != group.ID {
		t.Errorf("joined group %q, want %q", joined.ID, group.ID)
	}

	count, err := svc.MemberCount(group.ID)
	if err != nil {
		t.Fatalf("MemberCount: %v", err)
	}
	if count != 1 {
		t.Errorf("member count = %d after re-join, want 1", count)
	}
}

func TestJoinGroupUnknownCode(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alpha")

	svc := NewGroupService(db)
	_, _, err := svc.JoinGroup("NOPE99", user.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestJoinGroupFull(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	charlie := seedUser(t, db, "charlie")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	group := seedGroupWithMember(t, db, game.ID, alpha.ID, "ABC123")

	if err := db.Model(&models.Group{}).Where("id = ?", group.ID).Update("max_members", 2).Error; err != nil {
		t.Fatalf("shrink group: %v", err)
	}

	svc := NewGroupService(db)
	if _, _, err := svc.JoinGroup("ABC123", bravo.ID); err != nil {
		t.Fatalf("second member join: %v", err)
	}

	_, _, err := svc.JoinGroup("ABC123", charlie.ID)
	if !errors.Is(err, ErrGroupFull) {
		t.Fatalf("err = %v, want ErrGroupFull", err)
	}
}

func TestGetMyGroupPrefersNewest(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alpha")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	older := seedGroupWithMember(t, db, game.ID, user.ID, "OLDER1")
	if err := db.Model(&models.Group{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate group: %v", err)
	}
	newer := seedGroupWithMember(t, db, game.ID, user.ID, "NEWER1")

	svc := NewGroupService(db)
	group, err := svc.GetMyGroup(user.ID)
	if err != nil {
		t.Fatalf("GetMyGroup: %v", err)
	}
	if group.ID != newer.ID {
		t.Errorf("got group %q, want newest %q", group.ID, newer.ID)
	}
}

func TestGetMyGroupNone(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alpha")

	svc := NewGroupService(db)
	_, err := svc.GetMyGroup(user.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSnapshotAggregates(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	eyeballType := seedEyeballType(t, db, "golden", 10)
	first := seedEyeball(t, db, game.ID, eyeballType.ID, nil)
	second := seedEyeball(t, db, game.ID, eyeballType.ID, nil)
	group := seedGroupWithMember(t, db, game.ID, alpha.ID, "ABC123")

	groupSvc := NewGroupService(db)
	if _, _, err := groupSvc.JoinGroup("ABC123", bravo.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	captureSvc := NewCaptureService(db)
	if _, err := captureSvc.CreateCapture(first.ID, group.ID, alpha.ID); err != nil {
		t.Fatalf("alpha capture: %v", err)
	}
	if _, err := captureSvc.CreateCapture(second.ID, group.ID, bravo.ID); err != nil {
		t.Fatalf("bravo capture: %v", err)
	}

	snapshot, err := groupSvc.Snapshot(group.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapshot.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(snapshot.Members))
	}
	if snapshot.Members[0].UserID != alpha.ID {
		t.Errorf("first member = %q, want owner %q by join order", snapshot.Members[0].UserID, alpha.ID)
	}
	if snapshot.TotalScore != 20 || snapshot.CapturesCount != 2 {
		t.Errorf("totals = %d/%d, want 20/2", snapshot.TotalScore, snapshot.CapturesCount)
	}
}

func TestGroupLeaderboardOrdersByScore(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	eyeballType := seedEyeballType(t, db, "golden", 10)
	big := 30
	rich := seedEyeball(t, db, game.ID, eyeballType.ID, &big)
	poor := seedEyeball(t, db, game.ID, eyeballType.ID, nil)
	group := seedGroupWithMember(t, db, game.ID, alpha.ID, "ABC123")

	groupSvc := NewGroupService(db)
	if _, _, err := groupSvc.JoinGroup("ABC123", bravo.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	captureSvc := NewCaptureService(db)
	if _, err := captureSvc.CreateCapture(poor.ID, group.ID, alpha.ID); err != nil {
		t.Fatalf("alpha capture: %v", err)
	}
	if _, err := captureSvc.CreateCapture(rich.ID, group.ID, bravo.ID); err != nil {
		t.Fatalf("bravo capture: %v", err)
	}

	standings, err := groupSvc.GroupLeaderboard(group.ID)
	if err != nil {
		t.Fatalf("GroupLeaderboard: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("got %d standings, want 2", len(standings))
	}
	if standings[0].UserID != bravo.ID || standings[0].Score != 30 {
		t.Errorf("leader = %q/%d, want %q/30", standings[0].UserID, standings[0].Score, bravo.ID)
	}
}

func TestListActiveGroups(t *testing.T) {
	db := newTestDB(t)
	alpha := seedUser(t, db, "alpha")
	bravo := seedUser(t, db, "bravo")
	game := seedGame(t, db, models.GameStatusPlaying, time.Hour)
	groupA := seedGroupWithMember(t, db, game.ID, alpha.ID, "ABC123")
	seedGroupWithMember(t, db, game.ID, bravo.ID, "XYZ789")

	svc := NewGroupService(db)
	if _, _, err := svc.JoinGroup("ABC123", bravo.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	gameID, groups, err := svc.ListActiveGroups()
	if err != nil {
		t.Fatalf("ListActiveGroups: %v", err)
	}
	if gameID != game.ID {
		t.Errorf("game id = %q, want %q", gameID, game.ID)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	for _, entry := range groups {
		if entry.ID == groupA.ID && entry.MemberCount != 2 {
			t.Errorf("group A member count = %d, want 2", entry.MemberCount)
		}
	}
}

func TestListActiveGroupsNoGame(t *testing.T) {
	db := newTestDB(t)

	svc := NewGroupService(db)
	gameID, groups, err := svc.ListActiveGroups()
	if err != nil {
		t.Fatalf("ListActiveGroups: %v", err)
	}
	if gameID != "" {
		t.Errorf("game id = %q, want empty", gameID)
	}
	if len(groups) != 0 {
		t.Errorf("got %d groups, want 0", len(groups))
	}
}
