package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/levels"
	"go.uber.org/zap"
)

const busDispatchScript = `
update(__bus)
`

// LevelScriptSystem runs the level's tengo script for every bus entity. The
// script decides the bus velocity and when it turns around.
type LevelScriptSystem struct {
	state *GameState
	log   *zap.Logger

	scriptName string
	compiled   *tengo.Compiled
	failed     bool
}

func NewLevelScriptSystem(state *GameState, log *zap.Logger) *LevelScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &LevelScriptSystem{state: state, log: log}
}

func (s *LevelScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.state == nil || s.state.Level == nil {
		return
	}
	name := strings.TrimSpace(s.state.Level.Script)
	if name == "" {
		return
	}
	if err := s.load(name); err != nil {
		if !s.failed {
			s.log.Error("level script", zap.String("script", name), zap.Error(err))
			s.failed = true
		}
		return
	}

	ecs.ForEach2(w, component.BusComponent.Kind(), component.MotionComponent.Kind(), func(e ecs.Entity, bus *component.Bus, m *component.Motion) {
		if err := s.runBus(bus, m); err != nil {
			s.log.Warn("bus script", zap.Stringer("entity", e), zap.Error(err))
		}
	})
}

func (s *LevelScriptSystem) load(name string) error {
	if s.compiled != nil && s.scriptName == name {
		return nil
	}
	if s.failed && s.scriptName == name {
		return fmt.Errorf("script %s failed to compile", name)
	}
	s.scriptName = name

	src, err := levels.LoadScript(name)
	if err != nil {
		s.failed = true
		return err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + busDispatchScript))
	_ = script.Add("__bus", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		s.failed = true
		return err
	}
	s.compiled = compiled
	s.failed = false
	return nil
}

func (s *LevelScriptSystem) runBus(bus *component.Bus, m *component.Motion) error {
	values := map[string]tengo.Object{
		"x":     &tengo.Float{Value: m.Position.X},
		"vx":    &tengo.Float{Value: m.Velocity.X},
		"min_x": &tengo.Float{Value: bus.MinX},
		"max_x": &tengo.Float{Value: bus.MaxX},
		"speed": &tengo.Float{Value: bus.Speed},
	}
	values["set_vx"] = &tengo.UserFunction{Name: "set_vx", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		m.Velocity.X = v
		return tengo.TrueValue, nil
	}}
	values["flip"] = &tengo.UserFunction{Name: "flip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		m.ReflectX = !m.ReflectX
		return tengo.TrueValue, nil
	}}

	if err := s.compiled.Set("__bus", &tengo.ImmutableMap{Value: values}); err != nil {
		return err
	}
	return s.compiled.Run()
}
