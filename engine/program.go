package engine

// Exercise roles within a session.
const (
	RolePrimary   = "primary"
	RoleCompound  = "compound"
	RoleAccessory = "accessory"
)

// Program type labels.
const (
	ProgramFullBody       = "Full Body"
	ProgramUpperLower     = "Upper/Lower"
	ProgramUpperLower5Day = "Upper/Lower (5-day)"
)

// capabilities are the equipment flags that drive exercise substitution.
type capabilities struct {
	hasBarbell  bool
	hasMachines bool
}

func capsFor(equip Equipment) capabilities {
	switch equip {
	case EquipFull:
		return capabilities{hasBarbell: true, hasMachines: true}
	case EquipBarbell:
		return capabilities{hasBarbell: true}
	default:
		return capabilities{}
	}
}

func (c capabilities) barbell(with, without string) string {
	if c.hasBarbell {
		return with
	}
	return without
}

func (c capabilities) machine(with, without string) string {
	if c.hasMachines {
		return with
	}
	return without
}

func ex(name string, sets, repMin, repMax int, role string) Exercise {
	return Exercise{Name: name, Sets: sets, RepMin: repMin, RepMax: repMax, Role: role}
}

func fullBodyA(c capabilities) Session {
	return Session{Name: "Full Body A", Exercises: []Exercise{
		ex(c.barbell("Barbell Back Squat", "Goblet Squat"), 3, 5, 8, RolePrimary),
		ex(c.barbell("Barbell Bench Press", "Dumbbell Bench Press"), 3, 5, 8, RolePrimary),
		ex(c.barbell("Barbell Row", "One-Arm Dumbbell Row"), 3, 8, 10, RoleCompound),
		ex(c.machine("Leg Press", "Bulgarian Split Squat"), 3, 10, 12, RoleAccessory),
		ex(c.machine("Cable Crunch", "Lying Leg Raise"), 3, 10, 15, RoleAccessory),
	}}
}

func fullBodyB(c capabilities) Session {
	return Session{Name: "Full Body B", Exercises: []Exercise{
		ex(c.barbell("Romanian Deadlift", "Dumbbell Romanian Deadlift"), 3, 5, 8, RolePrimary),
		ex(c.barbell("Barbell Overhead Press", "Seated Dumbbell Press"), 3, 6, 10, RolePrimary),
		ex(c.machine("Lat Pulldown", "Pull-Up"), 3, 6, 10, RoleCompound),
		ex("Walking Lunge", 3, 10, 12, RoleAccessory),
		ex(c.machine("Face Pull", "Rear Delt Fly"), 3, 12, 15, RoleAccessory),
	}}
}

func upperPush(c capabilities) Session {
	return Session{Name: "Upper Push", Exercises: []Exercise{
		ex(c.barbell("Barbell Bench Press", "Dumbbell Bench Press"), 4, 5, 8, RolePrimary),
		ex(c.barbell("Barbell Overhead Press", "Seated Dumbbell Press"), 3, 6, 10, RoleCompound),
		ex("Incline Dumbbell Press", 3, 8, 12, RoleCompound),
		ex(c.machine("Cable Fly", "Dumbbell Fly"), 3, 12, 15, RoleAccessory),
		ex(c.machine("Triceps Pushdown", "Overhead Triceps Extension"), 3, 10, 15, RoleAccessory),
	}}
}

func upperPull(c capabilities) Session {
	return Session{Name: "Upper Pull", Exercises: []Exercise{
		ex(c.barbell("Barbell Row", "One-Arm Dumbbell Row"), 4, 5, 8, RolePrimary),
		ex(c.machine("Lat Pulldown", "Pull-Up"), 3, 6, 10, RoleCompound),
		ex(c.machine("Seated Cable Row", "Chest-Supported Dumbbell Row"), 3, 8, 12, RoleCompound),
		ex("Dumbbell Curl", 3, 10, 15, RoleAccessory),
		ex(c.machine("Face Pull", "Rear Delt Fly"), 3, 12, 15, RoleAccessory),
	}}
}

func lowerQuad(c capabilities) Session {
	return Session{Name: "Lower Quad", Exercises: []Exercise{
		ex(c.barbell("Barbell Back Squat", "Goblet Squat"), 4, 5, 8, RolePrimary),
		ex(c.machine("Leg Press", "Bulgarian Split Squat"), 3, 8, 12, RoleCompound),
		ex(c.machine("Leg Extension", "Step-Up"), 3, 10, 15, RoleAccessory),
		ex("Standing Calf Raise", 4, 10, 15, RoleAccessory),
		ex(c.machine("Cable Crunch", "Lying Leg Raise"), 3, 10, 15, RoleAccessory),
	}}
}

func lowerHinge(c capabilities) Session {
	return Session{Name: "Lower Hinge", Exercises: []Exercise{
		ex(c.barbell("Barbell Deadlift", "Dumbbell Romanian Deadlift"), 4, 3, 6, RolePrimary),
		ex(c.barbell("Barbell Hip Thrust", "Single-Leg Hip Thrust"), 3, 8, 12, RoleCompound),
		ex(c.machine("Lying Leg Curl", "Sliding Leg Curl"), 3, 10, 15, RoleAccessory),
		ex(c.machine("Back Extension", "Good Morning"), 3, 10, 15, RoleAccessory),
		ex("Standing Calf Raise", 4, 10, 15, RoleAccessory),
	}}
}

// GenerateProgram selects the fixed session templates for a training
// frequency and equipment tier. Pure lookup, no randomness. The experience
// tier is accepted for forward compatibility but does not currently alter
// selection. Exercise weights start at 0 and are filled in by ApplyWorkout.
func GenerateProgram(daysPerWeek int, experience Experience, equip Equipment) Program {
	c := capsFor(equip)

	switch {
	case daysPerWeek <= 3:
		return Program{Type: ProgramFullBody, Sessions: []Session{
			fullBodyA(c), fullBodyB(c), fullBodyA(c),
		}}
	case daysPerWeek == 4:
		return Program{Type: ProgramUpperLower, Sessions: []Session{
			upperPush(c), lowerQuad(c), upperPull(c), lowerHinge(c),
		}}
	default:
		return Program{Type: ProgramUpperLower5Day, Sessions: []Session{
			upperPush(c), lowerQuad(c), upperPull(c), lowerHinge(c), fullBodyA(c),
		}}
	}
}

// ApplyWorkout returns a copy of the program with each logged exercise's
// stored weight replaced by the heaviest set of this workout. It is a
// snapshot of the most recent session, not a running max: a lighter session
// legitimately lowers the stored weight. Sets at weight 0 are ignored, so a
// bodyweight-only log leaves the stored weight untouched.
func ApplyWorkout(p Program, log WorkoutLog) Program {
	out := Program{Type: p.Type, Sessions: make([]Session, len(p.Sessions))}
	for i, s := range p.Sessions {
		out.Sessions[i] = Session{Name: s.Name, Exercises: append([]Exercise(nil), s.Exercises...)}
	}
	if log.Session < 0 || log.Session >= len(out.Sessions) {
		return out
	}

	session := out.Sessions[log.Session]
	for _, logged := range log.Exercises {
		top := 0.0
		for _, set := range logged.Sets {
			if set.Weight > top {
				top = set.Weight
			}
		}
		if top <= 0 {
			continue
		}
		for i := range session.Exercises {
			if session.Exercises[i].Name == logged.Name {
				session.Exercises[i].LastWeight = top
				break
			}
		}
	}
	return out
}
