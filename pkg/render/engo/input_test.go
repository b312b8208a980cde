package engo

import "testing"

type recordingPlayer struct {
	moves []float64
	fires int
}

func (p *recordingPlayer) MoveDefender(dx float64) { p.moves = append(p.moves, dx) }

func (p *recordingPlayer) FireDefender() bool {
	p.fires++
	return true
}

func TestInputSystem_Tick(t *testing.T) {
	tests := []struct {
		name      string
		controls  Controls
		wantMoves []float64
		wantFires int
	}{
		{"idle", Controls{}, nil, 0},
		{"left", Controls{Left: true}, []float64{-4}, 0},
		{"right", Controls{Right: true}, []float64{4}, 0},
		{"both cancel", Controls{Left: true, Right: true}, nil, 0},
		{"fire", Controls{Fire: true}, nil, 1},
		{"right and fire", Controls{Right: true, Fire: true}, []float64{4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := &recordingPlayer{}
			is := NewInputSystem(player, 4)

			is.Sample(tt.controls)
			is.Tick()

			if len(player.moves) != len(tt.wantMoves) {
				t.Fatalf("moves = %v, want %v", player.moves, tt.wantMoves)
			}
			for i := range tt.wantMoves {
				if player.moves[i] != tt.wantMoves[i] {
					t.Errorf("moves = %v, want %v", player.moves, tt.wantMoves)
				}
			}
			if player.fires != tt.wantFires {
				t.Errorf("fires = %d, want %d", player.fires, tt.wantFires)
			}
		})
	}
}

func TestInputSystem_FireConsumedOnce(t *testing.T) {
	player := &recordingPlayer{}
	is := NewInputSystem(player, 4)

	is.Sample(Controls{Fire: true})
	is.Sample(Controls{})
	is.Tick()
	is.Tick()

	if player.fires != 1 {
		t.Errorf("fires = %d, want 1", player.fires)
	}
}

func TestInputSystem_HeldKeyMovesEveryTick(t *testing.T) {
	player := &recordingPlayer{}
	is := NewInputSystem(player, 2)

	is.Sample(Controls{Left: true})
	for range 3 {
		is.Tick()
	}

	if len(player.moves) != 3 {
		t.Errorf("moves = %v, want three steps", player.moves)
	}
}

func TestInputSystem_Update(t *testing.T) {
	player := &recordingPlayer{}
	is := NewInputSystem(player, 1)
	is.read = func() Controls { return Controls{Quit: true} }

	if is.QuitRequested() {
		t.Fatal("quit requested before any input")
	}
	is.Update(0.016)
	if !is.QuitRequested() {
		t.Error("QuitRequested() = false after quit key")
	}
}
