// pkg/entity/entity_test.go
package entity

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-invaders/pkg/physics"
)

// recordingSurface records which draw method each entity dispatched to.
type recordingSurface struct {
	calls []string
}

func (r *recordingSurface) Clear() { r.calls = append(r.calls, "clear") }
func (r *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	r.calls = append(r.calls, "fill")
}
func (r *recordingSurface) DrawShip(*Ship)               { r.calls = append(r.calls, "ship") }
func (r *recordingSurface) DrawBullet(*Bullet)           { r.calls = append(r.calls, "bullet") }
func (r *recordingSurface) DrawShieldPiece(*ShieldPiece) { r.calls = append(r.calls, "shield_piece") }
func (r *recordingSurface) DrawStar(*Star)               { r.calls = append(r.calls, "star") }
func (r *recordingSurface) Present()                     { r.calls = append(r.calls, "present") }

func TestBaseEntity_Move(t *testing.T) {
	tests := []struct {
		name     string
		position physics.Vector2D
		velocity physics.Vector2D
		expected physics.Vector2D
	}{
		{"stationary", physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{}, physics.Vector2D{X: 10, Y: 10}},
		{"invader_drift", physics.Vector2D{X: 50, Y: 80}, physics.Vector2D{X: 0.3, Y: 0}, physics.Vector2D{X: 50.3, Y: 80}},
		{"negative", physics.Vector2D{X: 0, Y: 0}, physics.Vector2D{X: -2, Y: -5}, physics.Vector2D{X: -2, Y: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEntity{Position: tt.position, Velocity: tt.velocity}
			e.Move()
			if e.Position != tt.expected {
				t.Errorf("Move() position = %v, want %v", e.Position, tt.expected)
			}
		})
	}
}

func TestBaseEntity_MoveHasNoDrift(t *testing.T) {
	e := &BaseEntity{Position: physics.Vector2D{X: 1, Y: 2}, Velocity: physics.Vector2D{X: 0.25, Y: -0.5}}
	for i := 0; i < 400; i++ {
		before := e.Position
		e.Move()
		if e.Position != before.Add(e.Velocity) {
			t.Fatalf("tick %d: position %v != %v + %v", i, e.Position, before, e.Velocity)
		}
	}
}

func TestBaseEntity_GetCollider(t *testing.T) {
	e := &BaseEntity{Position: physics.Vector2D{X: 3, Y: 4}, Radius: 7}
	c := e.GetCollider()
	if c.Center != e.Position || c.Radius != 7 {
		t.Errorf("GetCollider() = %+v", c)
	}
}

func TestSide_Opposes(t *testing.T) {
	tests := []struct {
		a, b     Side
		expected bool
	}{
		{SideDefender, SideInvader, true},
		{SideInvader, SideDefender, true},
		{SideInvader, SideInvader, false},
		{SideDefender, SideDefender, false},
		{SideNone, SideInvader, false},
		{SideNone, SideNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.a.String()+"_vs_"+tt.b.String(), func(t *testing.T) {
			if got := tt.a.Opposes(tt.b); got != tt.expected {
				t.Errorf("Opposes() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	names := map[Kind]string{
		KindStar:        "star",
		KindBullet:      "bullet",
		KindShip:        "ship",
		KindShieldPiece: "shield_piece",
		Kind(42):        "unknown",
	}
	for kind, want := range names {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestIDGenerator_Next(t *testing.T) {
	var ids IDGenerator
	seen := make(map[ID]bool)
	for i := 1; i <= 100; i++ {
		id := ids.Next()
		if id != ID(i) {
			t.Fatalf("Next() = %d, want %d", id, i)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestStar_MoveWraps(t *testing.T) {
	bounds := physics.Bounds{Width: 200, Height: 300}
	star := NewStar(1, bounds, physics.Vector2D{X: 1, Y: 299}, physics.Vector2D{X: -8, Y: 8})

	star.Move()

	if star.Position.X != 193 || star.Position.Y != 7 {
		t.Errorf("star position after wrap = %v, want {193 7}", star.Position)
	}
	if star.Kind() != KindStar || star.Side() != SideNone {
		t.Errorf("star kind/side = %v/%v", star.Kind(), star.Side())
	}
}

func TestEntity_DrawDispatch(t *testing.T) {
	var ids IDGenerator
	ship := NewShip(ids.Next(), VariantGrunt, SideInvader, physics.Vector2D{}, physics.Vector2D{X: 0.3})
	bullet := ship.FireBullet(ids.Next(), 5)
	shield := NewShield(&ids, physics.Vector2D{X: 50, Y: 50}, 15, 5)
	star := NewStar(ids.Next(), physics.Bounds{Width: 10, Height: 10}, physics.Vector2D{}, physics.Vector2D{})

	surface := &recordingSurface{}
	for _, e := range []Entity{ship, bullet, shield.Pieces[0], star} {
		e.Draw(surface)
	}

	want := []string{"ship", "bullet", "shield_piece", "star"}
	if len(surface.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", surface.calls, want)
	}
	for i := range want {
		if surface.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, surface.calls[i], want[i])
		}
	}
}

func TestIsCollidedWith(t *testing.T) {
	var ids IDGenerator
	defender := NewShip(ids.Next(), VariantDefender, SideDefender, physics.Vector2D{X: 100, Y: 230}, physics.Vector2D{})
	near := &Bullet{BaseEntity: BaseEntity{ID: ids.Next(), Position: physics.Vector2D{X: 100, Y: 220}, Radius: BulletRadius}}
	far := &Bullet{BaseEntity: BaseEntity{ID: ids.Next(), Position: physics.Vector2D{X: 100, Y: 190}, Radius: BulletRadius}}

	if !IsCollidedWith(defender, near) || !IsCollidedWith(near, defender) {
		t.Error("expected overlapping bullet to collide in both orders")
	}
	if IsCollidedWith(defender, far) {
		t.Error("expected distant bullet not to collide")
	}
}
