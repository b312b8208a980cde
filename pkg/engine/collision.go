package engine

import (
	"cmp"
	"slices"

	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/event"
)

// Resolution is what happens when an eligible pair touches.
type Resolution int

const (
	ResolveNone Resolution = iota
	// ResolveInvaderKill removes the invader and the bullet and scores the kill.
	ResolveInvaderKill
	// ResolveDefenderHit consumes the bullet and costs the defender a life.
	ResolveDefenderHit
	// ResolveShieldErode removes the shield piece and the bullet.
	ResolveShieldErode
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolveInvaderKill:
		return "invader_kill"
	case ResolveDefenderHit:
		return "defender_hit"
	case ResolveShieldErode:
		return "shield_erode"
	default:
		return "none"
	}
}

type pairKey struct {
	kindA entity.Kind
	sideA entity.Side
	kindB entity.Kind
	sideB entity.Side
}

// interactions is the complete interaction matrix, keyed bullet first.
// Any pair not listed here never interacts.
var interactions = map[pairKey]Resolution{
	{entity.KindBullet, entity.SideDefender, entity.KindShip, entity.SideInvader}:     ResolveInvaderKill,
	{entity.KindBullet, entity.SideInvader, entity.KindShip, entity.SideDefender}:     ResolveDefenderHit,
	{entity.KindBullet, entity.SideDefender, entity.KindShieldPiece, entity.SideNone}: ResolveShieldErode,
	{entity.KindBullet, entity.SideInvader, entity.KindShieldPiece, entity.SideNone}:  ResolveShieldErode,
}

func keyOf(a, b entity.Entity) pairKey {
	return pairKey{a.Kind(), a.Side(), b.Kind(), b.Side()}
}

// ValidCollision looks the pair up in the interaction matrix, in either
// order. An entity never interacts with itself.
func ValidCollision(a, b entity.Entity) Resolution {
	if a == nil || b == nil || a == b {
		return ResolveNone
	}
	if r, ok := interactions[keyOf(a, b)]; ok {
		return r
	}
	return interactions[keyOf(b, a)]
}

// collisionPass collects the removal intents of one CheckCollisions call.
// Anything consumed is ineligible for the rest of the pass.
type collisionPass struct {
	consumed map[entity.ID]bool
	removals []entity.Entity
	kills    int
}

func (p *collisionPass) consume(e entity.Entity) {
	if p.consumed[e.GetID()] {
		return
	}
	p.consumed[e.GetID()] = true
	p.removals = append(p.removals, e)
}

// CheckCollisions resolves every touching eligible pair among the current
// collision objects and returns how many were resolved. Each bullet is
// paired with the targets near it, lowest ID first; removals are
// applied only after the whole pass.
func (g *Game) CheckCollisions() int {
	bullets, overflow := g.indexTargets()
	pass := &collisionPass{consumed: make(map[entity.ID]bool)}
	resolved := 0

	for _, bullet := range bullets {
		if g.Status == StatusLost {
			break
		}
		if pass.consumed[bullet.ID] {
			continue
		}
		for _, target := range g.candidates(bullet, overflow) {
			if pass.consumed[target.GetID()] {
				continue
			}
			if g.collideWith(bullet, target, pass) {
				resolved++
				break
			}
		}
	}

	for _, e := range pass.removals {
		g.Remove(e)
	}
	for i := 0; i < pass.kills; i++ {
		g.IncreaseInvadersSpeed()
	}
	return resolved
}

// indexTargets rebuilds the broad phase from CollisionObjects. Bullets come
// back as the pass snapshot; targets the tree cannot hold come back as
// overflow and are checked against every bullet.
func (g *Game) indexTargets() (bullets []*entity.Bullet, overflow []entity.Entity) {
	g.SpatialIndex.Clear()
	for _, object := range g.CollisionObjects() {
		if bullet, ok := object.(*entity.Bullet); ok {
			bullets = append(bullets, bullet)
			continue
		}
		if !g.SpatialIndex.Insert(object.GetPosition(), object) {
			overflow = append(overflow, object)
		}
	}
	return bullets, overflow
}

func (g *Game) candidates(bullet *entity.Bullet, overflow []entity.Entity) []entity.Entity {
	margin := max(float64(entity.ShipRadius), g.Config.Shields.PieceSpacing/2)
	found := g.SpatialIndex.Query(bullet.GetCollider().Bounds(margin))

	targets := make([]entity.Entity, 0, len(found)+len(overflow))
	for _, object := range found {
		targets = append(targets, object.(entity.Entity))
	}
	targets = append(targets, overflow...)
	slices.SortFunc(targets, func(a, b entity.Entity) int {
		return cmp.Compare(a.GetID(), b.GetID())
	})
	return targets
}

// collideWith resolves bullet against target if the pair is eligible and
// overlapping. It reports whether anything happened.
func (g *Game) collideWith(bullet *entity.Bullet, target entity.Entity, pass *collisionPass) bool {
	resolution := ValidCollision(bullet, target)
	if resolution == ResolveNone || !entity.IsCollidedWith(bullet, target) {
		return false
	}

	switch resolution {
	case ResolveInvaderKill:
		invader := target.(*entity.Ship)
		pass.consume(bullet)
		pass.consume(invader)
		pass.kills++
		g.Score += invader.Points()
		g.logger.Debug(g.ctx, "invader destroyed",
			"ship_id", invader.ID,
			"variant", invader.Variant,
			"score", g.Score)
		g.EventBus.Publish(g.shipEvent(event.InvaderDestroyed, invader))

	case ResolveDefenderHit:
		pass.consume(bullet)
		g.DefenderLives = max(g.DefenderLives-1, 0)
		g.logger.Debug(g.ctx, "defender hit", "lives", g.DefenderLives)
		g.EventBus.Publish(g.shipEvent(event.DefenderHit, g.Defender))
		if g.DefenderLives == 0 {
			g.Lose()
		}

	case ResolveShieldErode:
		piece := target.(*entity.ShieldPiece)
		pass.consume(bullet)
		pass.consume(piece)
		g.EventBus.Publish(event.NewShieldEvent(g, uint64(piece.ShieldID), uint64(piece.ID), uint64(bullet.ID)))
	}
	return true
}

// Remove takes e out of its collection. Removing a bullet re-arms its owner.
// The defender and stars are not removable; absent entities report false.
func (g *Game) Remove(e entity.Entity) bool {
	switch object := e.(type) {
	case *entity.Bullet:
		if !removeFrom(&g.Bullets, object) {
			return false
		}
		object.Release()
		return true
	case *entity.Ship:
		if object == g.Defender {
			return false
		}
		return removeFrom(&g.InvaderShips, object)
	case *entity.ShieldPiece:
		if !removeFrom(&g.ShieldPieces, object) {
			return false
		}
		for _, shield := range g.Shields {
			if shield.ID == object.ShieldID {
				removeFrom(&shield.Pieces, object)
				break
			}
		}
		return true
	default:
		return false
	}
}

func removeFrom[T comparable](list *[]T, item T) bool {
	i := slices.Index(*list, item)
	if i < 0 {
		return false
	}
	*list = slices.Delete(*list, i, i+1)
	return true
}
