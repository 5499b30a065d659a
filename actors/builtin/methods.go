package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

var MethodsInit = struct {
	Constructor abi.MethodNum
	Exec        abi.MethodNum
}{MethodConstructor, 2}

var MethodsLeak = struct {
	Constructor          abi.MethodNum
	GetMessage           abi.MethodNum
	GetPublicDescription abi.MethodNum
	ChangeReleaseTime    abi.MethodNum
	GetInfo              abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5}

// The Release actor has no public description, so its method 3 is unassigned.
var MethodsRelease = struct {
	Constructor       abi.MethodNum
	GetMessage        abi.MethodNum
	ChangeReleaseTime abi.MethodNum
	GetInfo           abi.MethodNum
}{MethodConstructor, 2, 4, 5}

var MethodsGreeter = struct {
	Constructor abi.MethodNum
	Greet       abi.MethodNum
	HasGreeted  abi.MethodNum
}{MethodConstructor, 2, 3}
