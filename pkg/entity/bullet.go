package entity

// BulletRadius is the collision radius of every bullet.
const BulletRadius = 2

// Bullet is a projectile fired by exactly one ship.
type Bullet struct {
	BaseEntity
	Owner *Ship
}

// Kind implements Entity.
func (b *Bullet) Kind() Kind {
	return KindBullet
}

// Draw implements Entity.
func (b *Bullet) Draw(surface Surface) {
	surface.DrawBullet(b)
}

// Release hands the owner its fire permission back.
func (b *Bullet) Release() {
	if b.Owner != nil {
		b.Owner.ReleaseBullet(b)
	}
}
