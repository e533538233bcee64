package object

import (
	"math"
	"testing"

	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
)

// constRand always returns the same value.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

var field = Field{Width: config.FieldWidth, Height: config.FieldHeight}

func TestPlayerSpawnAndMuzzle(t *testing.T) {
	p := NewPlayer(field)
	if p.X != 225 || p.Y != 540 {
		t.Fatalf("expected spawn at (225,540), got (%v,%v)", p.X, p.Y)
	}
	x, y := p.Muzzle()
	if x != 238 || y != 540 {
		t.Fatalf("expected muzzle at (238,540), got (%v,%v)", x, y)
	}
}

func TestPlayerMoveClamped(t *testing.T) {
	cases := []struct {
		name  string
		start float64
		dir   float64
		ticks int
		want  float64
	}{
		{"right_one_tick", 225, 1, 1, 232},
		{"left_one_tick", 225, -1, 1, 218},
		{"left_wall", 3, -1, 1, 0},
		{"right_wall", 445, 1, 1, 450},
		{"held_left_long", 225, -1, 500, 0},
		{"held_right_long", 225, 1, 500, 450},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlayer(field)
			p.X = c.start
			for i := 0; i < c.ticks; i++ {
				p.Move(c.dir, field)
				if p.X < 0 || p.X > field.Width-p.W {
					t.Fatalf("tick %d: x=%v out of bounds", i, p.X)
				}
			}
			if p.X != c.want {
				t.Fatalf("expected x=%v, got %v", c.want, p.X)
			}
		})
	}
}

func TestBulletLifecycle(t *testing.T) {
	ctx := UpdateContext{Field: field, Level: 1}

	b := NewBullet(100, 15)
	if b.Update(ctx) {
		t.Fatal("bullet at y=5 should survive")
	}
	if b.Y != 5 {
		t.Fatalf("expected y=5 after one tick, got %v", b.Y)
	}
	if !b.Update(ctx) {
		t.Fatal("bullet above the top edge should be removed")
	}

	eb := NewEnemyBullet(100, 636, 3)
	if math.Abs(eb.Speed-4.3) > 1e-9 {
		t.Fatalf("expected speed 4.3 at stage 3, got %v", eb.Speed)
	}
	if !eb.Update(ctx) {
		t.Fatal("enemy bullet past the bottom should be removed")
	}
}

func TestEnemyKindsAndPoints(t *testing.T) {
	cases := []struct {
		row    int
		kind   EnemyKind
		hp     int
		points int
	}{
		{0, Boss, 2, 400},
		{1, Red, 1, 150},
		{2, Blue, 1, 80},
		{3, Blue, 1, 80},
	}
	for _, c := range cases {
		e := NewEnemy(0, 0, KindForRow(c.row), 0)
		if e.Kind != c.kind || e.HP != c.hp || e.Points() != c.points {
			t.Fatalf("row %d: got %v hp=%d points=%d", c.row, e.Kind, e.HP, e.Points())
		}
	}
}

func TestEnemyMarchAndEdge(t *testing.T) {
	ctx := UpdateContext{Field: field, Level: 1, Rand: constRand(0.99)}

	e := NewEnemy(100, 60, Blue, 0)
	edge, shot := e.Update(ctx)
	if edge || shot != nil {
		t.Fatal("mid-field march should neither hit an edge nor fire")
	}
	if math.Abs(e.X-101.1) > 1e-9 {
		t.Fatalf("expected x=101.1 at stage 1, got %v", e.X)
	}

	e.X = 440
	if edge, _ := e.Update(ctx); !edge {
		t.Fatal("expected edge hit past the right margin")
	}

	e.Reverse()
	if e.Direction != -1 || e.Y != 65 {
		t.Fatalf("expected reversed and dropped, got dir=%v y=%v", e.Direction, e.Y)
	}
}

func TestEnemyDive(t *testing.T) {
	ctx := UpdateContext{Field: field, Level: 1, Rand: constRand(0)}

	e := NewEnemy(100, 60, Red, 0)
	edge, shot := e.Update(ctx)
	if !e.Diving {
		t.Fatal("rand 0 should start a dive")
	}
	if shot == nil {
		t.Fatal("rand 0 should fire")
	}
	if shot.X != e.X+e.W/2 || shot.Y != e.Y+e.H {
		t.Fatalf("shot spawned at (%v,%v), want enemy's bottom centre", shot.X, shot.Y)
	}
	_ = edge

	y := e.Y
	e.Update(ctx)
	if math.Abs(e.Y-(y+3.2)) > 1e-9 {
		t.Fatalf("expected dive speed 3.2 at stage 1, got dy=%v", e.Y-y)
	}

	dir := e.Direction
	e.Reverse()
	if e.Direction != dir {
		t.Fatal("diving enemies must ignore formation reversal")
	}

	e.Y = 639
	e.Update(UpdateContext{Field: field, Level: 1, Rand: constRand(0.99)})
	if e.Diving || e.Y != 0 {
		t.Fatalf("expected wrap to the top and rejoin, got diving=%v y=%v", e.Diving, e.Y)
	}
}

func TestFireChanceGrowth(t *testing.T) {
	if got := FireChance(1); got != 0.002 {
		t.Fatalf("expected 0.002 at stage 1, got %v", got)
	}
	if got := FireChance(3); math.Abs(got-0.002*1.21) > 1e-12 {
		t.Fatalf("expected 0.00242 at stage 3, got %v", got)
	}
}

func TestEnemyHit(t *testing.T) {
	boss := NewEnemy(0, 0, Boss, 0)
	if boss.Hit() {
		t.Fatal("boss should survive the first hit")
	}
	if !boss.Hit() || !boss.IsDestroyed() {
		t.Fatal("boss should die on the second hit")
	}
}

func TestExplosionAndParticles(t *testing.T) {
	ps := SpawnExplosion(nil, 50, 60, ColorRedDebris, constRand(1))
	if len(ps) != config.ExplosionParticles {
		t.Fatalf("expected %d particles, got %d", config.ExplosionParticles, len(ps))
	}
	p := ps[0]
	if p.VX != 2 || p.VY != 2 || p.Life != 30 {
		t.Fatalf("unexpected particle %+v", *p)
	}

	for i := 0; i < 29; i++ {
		if p.Update() {
			t.Fatalf("particle expired early at tick %d", i)
		}
	}
	if !p.Update() {
		t.Fatal("particle should expire after 30 ticks")
	}
	p.Release()
}

func TestStarWraps(t *testing.T) {
	stars := NewStarfield(config.StarCount, field, constRand(0.5))
	if len(stars) != 100 {
		t.Fatalf("expected 100 stars, got %d", len(stars))
	}
	s := stars[0]
	if s.Size != 1 || s.Speed != 2.5 {
		t.Fatalf("unexpected star %+v", s)
	}

	s.Y = 639
	s.Update(field)
	if s.Y != 0 {
		t.Fatalf("expected wrap to 0, got %v", s.Y)
	}
}

func TestPlayerDraw(t *testing.T) {
	rec := draw.NewRecorder(field.Width, field.Height)
	p := NewPlayer(field)
	p.Draw(rec, 0.5)

	if len(rec.Ops) != 3 {
		t.Fatalf("expected body, nose and engine, got %d ops", len(rec.Ops))
	}
	engine := rec.Ops[2]
	if engine.Y != p.Y+p.H || engine.W != 6 || engine.H != 8 {
		t.Fatalf("engine glow misplaced: %+v", engine)
	}
	if engine.Color.A != 0.75 {
		t.Fatalf("expected engine alpha 0.75, got %v", engine.Color.A)
	}
}
